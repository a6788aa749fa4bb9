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
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/timburks/gote/commander"
	"github.com/timburks/gote/editor"
	"github.com/timburks/gote/keymap"
	"github.com/timburks/gote/render"
	"github.com/timburks/gote/screen"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "gote: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	home := os.Getenv("HOME")
	config := filepath.Join(home, ".goterc")
	var filename string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			i++
			if i >= len(args) {
				return fmt.Errorf("no file specified for --config option")
			}
			config = args[i]
		default:
			if filename != "" {
				return fmt.Errorf("only one file can be edited at a time")
			}
			filename = args[i]
		}
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("standard input and output must be a terminal")
	}

	// Open a log file.
	f, err := os.OpenFile(filepath.Join(home, ".gotelog"), os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	defer f.Close()

	cfg, err := keymap.Load(config)
	if err != nil {
		return err
	}

	// The editor manages all text manipulation.
	e := editor.NewEditor(editor.Disk{})
	e.TabWidth = cfg.TabWidth
	e.History.Pause = cfg.UndoPause
	e.History.Limit = cfg.UndoLimit
	if filename != "" {
		if err := e.ReadFile(filename); err != nil {
			return err
		}
	}

	// The commander converts user inputs into commands for the editor.
	c := commander.NewCommander(e, cfg.Table)

	// Create a screen to manage display.
	s, err := screen.NewScreen()
	if err != nil {
		return err
	}
	defer s.Close()

	// Run the main event loop.
	r := render.NewRenderer()
	for c.IsRunning() {
		if _, err := r.Render(s, c.State(s.Size())); err != nil {
			log.Printf("render: %v", err)
		}
		c.ProcessEvent(s.NextEvent())
	}
	return nil
}
