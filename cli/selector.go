/*
 * Selector
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Selector is a library and tool for compiling and evaluating JMS style
message selector expressions.

Features:

- Selector expressions are compiled into immutable predicate trees which
can be evaluated many times against different environments.

- Three-valued logic with SQL style NULL semantics.

- LIKE patterns with custom escape characters, BETWEEN ranges and IN lists.

- An interactive shell for experimenting with selector expressions.

- A simple broker server which routes published messages to websocket
subscribers based on their registered selectors.
*/
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devt.de/krotik/common/termutil"
	"devt.de/krotik/selector/config"
	"devt.de/krotik/selector/console"
	"devt.de/krotik/selector/interpreter"
	"devt.de/krotik/selector/server"
)

func main() {

	// Initialize the default command line parser

	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	// Define default usage message

	flag.Usage = func() {

		// Print usage for tool selection

		fmt.Println(fmt.Sprintf("Usage of %s <tool>", os.Args[0]))
		fmt.Println()
		fmt.Println("Selector expression compiler and broker")
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println()
		fmt.Println("    console   Interactive selector shell")
		fmt.Println("    server    Start selector broker server")
		fmt.Println()
		fmt.Println(fmt.Sprintf("Use %s <command> -help for more information about a given command.", os.Args[0]))
		fmt.Println()
	}

	// Parse the command bit

	err := flag.CommandLine.Parse(os.Args[1:])

	if len(flag.Args()) > 0 {

		arg := flag.Args()[0]

		if arg == "server" {
			config.LoadConfigFile(config.DefaultConfigFile)
			server.StartServer()
		} else if arg == "console" {
			RunCliConsole()
		} else {
			flag.Usage()
		}

	} else if err == nil {

		flag.Usage()
	}
}

/*
RunCliConsole runs the interactive selector shell on the commandline.
*/
func RunCliConsole() {
	var err error

	cmdfile := flag.String("file", "", "Read commands from a file and exit")
	cmdline := flag.String("exec", "", "Execute a single line and exit")

	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Println()
		fmt.Println(fmt.Sprintf("Usage of %s console [options] [name=value ...]", os.Args[0]))
		fmt.Println()
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Trailing name=value arguments are bound as string values in the environment.")
		fmt.Println()
	}

	flag.CommandLine.Parse(os.Args[2:])

	if *showHelp {
		flag.Usage()
		return
	}

	if *cmdfile == "" && *cmdline == "" {
		fmt.Println(fmt.Sprintf("Selector %v - Console", config.ProductVersion))
	}

	var clt termutil.ConsoleLineTerminal

	isExitLine := func(s string) bool {
		return s == "exit" || s == "q" || s == "quit" || s == "bye" || s == "\x04"
	}

	clt, err = termutil.NewConsoleLineTerminal(os.Stdout)

	if *cmdfile != "" {
		var file *os.File

		// Read commands from a file

		file, err = os.Open(*cmdfile)
		if err == nil {
			defer file.Close()

			clt, err = termutil.AddFileReadingWrapper(clt, file, true)
		}

	} else if *cmdline != "" {
		var buf bytes.Buffer

		buf.WriteString(fmt.Sprintln(*cmdline))

		// Read commands from a single line

		clt, err = termutil.AddFileReadingWrapper(clt, &buf, true)

	} else {

		// Add history functionality

		histfile := filepath.Join(filepath.Dir(os.Args[0]), ".selector_console_history")
		clt, err = termutil.AddHistoryMixin(clt, histfile,
			func(s string) bool {
				return isExitLine(s)
			})
	}

	if err == nil {

		// Create the console object

		con := console.NewConsole(os.Stdout)

		// Bind trailing name=value arguments in the environment

		env := con.(console.CommandConsoleAPI).Env()

		for _, arg := range flag.Args() {
			if eq := strings.Index(arg, "="); eq > 0 {
				env.Set(arg[:eq], interpreter.StringValue(arg[eq+1:]))
			}
		}

		// Start the console

		if err = clt.StartTerm(); err == nil {
			var line string

			defer clt.StopTerm()

			if *cmdfile == "" && *cmdline == "" {
				fmt.Println("Type 'q' or 'quit' to exit the shell and 'help' to get help")
			}

			line, err = clt.NextLine()
			for err == nil && !isExitLine(line) {

				_, cerr := con.Run(line)

				if cerr != nil {

					// Output any error

					fmt.Fprintln(clt, cerr.Error())
				}

				line, err = clt.NextLine()
			}
		}
	}

	if err != nil {
		fmt.Println(err.Error())
	}
}
