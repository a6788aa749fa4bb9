//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package keymap

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/steelseries/golisp"
)

// The primitives below write into the config being loaded.
var (
	loading   sync.Mutex
	current   *Config
	loadError error
)

func init() {
	golisp.MakePrimitiveFunction("bind", "2", BindImpl)
	golisp.MakePrimitiveFunction("unbind", "1", UnbindImpl)
	golisp.MakePrimitiveFunction("tab-width", "1", TabWidthImpl)
	golisp.MakePrimitiveFunction("undo-pause-ms", "1", UndoPauseImpl)
	golisp.MakePrimitiveFunction("undo-limit", "1", UndoLimitImpl)
}

// Load reads a configuration file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}
	c, err := Parse(string(src))
	if err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse evaluates configuration source on top of the defaults.
func Parse(src string) (Config, error) {
	loading.Lock()
	defer loading.Unlock()
	c := DefaultConfig()
	current, loadError = &c, nil
	defer func() { current = nil }()
	if _, err := golisp.ParseAndEval("(begin\n" + src + "\n)"); err != nil {
		return DefaultConfig(), err
	}
	if loadError != nil {
		return DefaultConfig(), loadError
	}
	return c, nil
}

func fail(err error) (*golisp.Data, error) {
	if loadError == nil {
		loadError = err
	}
	return nil, err
}

func stringArg(name string, val *golisp.Data) (string, error) {
	if !golisp.StringP(val) {
		return "", fmt.Errorf("%s requires string arguments", name)
	}
	return golisp.StringValue(val), nil
}

func intArg(name string, val *golisp.Data) (int, error) {
	switch {
	case golisp.IntegerP(val):
		return int(golisp.IntegerValue(val)), nil
	case golisp.FloatP(val):
		return int(golisp.FloatValue(val)), nil
	}
	return 0, fmt.Errorf("%s requires a number", name)
}

func BindImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	key, err := stringArg("bind", golisp.Car(args))
	if err != nil {
		return fail(err)
	}
	action, err := stringArg("bind", golisp.Car(golisp.Cdr(args)))
	if err != nil {
		return fail(err)
	}
	if current == nil {
		return nil, nil
	}
	if err := current.Table.Bind(key, action); err != nil {
		return fail(err)
	}
	return nil, nil
}

func UnbindImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	key, err := stringArg("unbind", golisp.Car(args))
	if err != nil {
		return fail(err)
	}
	if current == nil {
		return nil, nil
	}
	if err := current.Table.Unbind(key); err != nil {
		return fail(err)
	}
	return nil, nil
}

func TabWidthImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	n, err := intArg("tab-width", golisp.Car(args))
	if err != nil {
		return fail(err)
	}
	if n < 1 || n > 32 {
		return fail(fmt.Errorf("tab-width %d out of range", n))
	}
	if current != nil {
		current.TabWidth = n
	}
	return nil, nil
}

func UndoPauseImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	n, err := intArg("undo-pause-ms", golisp.Car(args))
	if err != nil {
		return fail(err)
	}
	if n < 0 {
		return fail(fmt.Errorf("undo-pause-ms %d is negative", n))
	}
	if current != nil {
		current.UndoPause = time.Duration(n) * time.Millisecond
	}
	return nil, nil
}

func UndoLimitImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	n, err := intArg("undo-limit", golisp.Car(args))
	if err != nil {
		return fail(err)
	}
	if n < 0 {
		return fail(fmt.Errorf("undo-limit %d is negative", n))
	}
	if current != nil {
		current.UndoLimit = n
	}
	return nil, nil
}
