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
Package console contains the command processor for the interactive selector
shell. Lines are compiled and evaluated as selector expressions against a
process-wide environment. Meta commands start with a backslash:

	\v name=expr   Bind an identifier to the result of an expression
	\e             Display the environment
	\p expr        Display the canonical form of an expression

All other input lines are treated as commands (e.g. help) or as selector
expressions.
*/
package console

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"devt.de/krotik/selector"
	"devt.de/krotik/selector/interpreter"
)

/*
CommandConsole is the main interface for command processors.
*/
type CommandConsole interface {

	/*
		Run executes one or more commands. It returns an error if the
		command had an unexpected result and a flag if the command was
		handled.
	*/
	Run(cmd string) (bool, error)

	/*
	   Commands returns a sorted list of all available commands.
	*/
	Commands() []Command
}

/*
CommandConsoleAPI is the console interface which commands can use to
produce output and access the environment.
*/
type CommandConsoleAPI interface {
	CommandConsole

	/*
	   Out returns a writer which can be used to write to the console.
	*/
	Out() io.Writer

	/*
	   Env returns the environment of the console.
	*/
	Env() *interpreter.MapEnv
}

/*
Command is an interface for a command which can be run in the console.
*/
type Command interface {

	/*
	   Name returns the command name (as it should be typed).
	*/
	Name() string

	/*
	   ShortDescription returns a short description of the command (single line).
	*/
	ShortDescription() string

	/*
	   LongDescription returns an extensive description of the command
	   (can be multiple lines).
	*/
	LongDescription() string

	/*
	   Run executes the command.
	*/
	Run(args []string, capi CommandConsoleAPI) error
}

/*
NewConsole creates a new SelectorConsole object which parses and executes
given selector expressions and commands from Run and outputs the result to
the given Writer.
*/
func NewConsole(out io.Writer) CommandConsole {

	cmdMap := make(map[string]Command)

	cmdMap[CommandHelp] = &CmdHelp{}
	cmdMap[CommandVer] = &CmdVer{}

	return &SelectorConsole{out, interpreter.NewMapEnv(), cmdMap}
}

/*
SelectorConsole is the main selector shell console object.
*/
type SelectorConsole struct {
	out    io.Writer           // Output writer of the console
	env    *interpreter.MapEnv // Environment of the console
	cmdMap map[string]Command  // Map of registered commands
}

/*
Out returns a writer which can be used to write to the console.
*/
func (c *SelectorConsole) Out() io.Writer {
	return c.out
}

/*
Env returns the environment of the console.
*/
func (c *SelectorConsole) Env() *interpreter.MapEnv {
	return c.env
}

/*
Commands returns a sorted list of all available commands.
*/
func (c *SelectorConsole) Commands() []Command {
	var res []Command

	for _, c := range c.cmdMap {
		res = append(res, c)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Name() < res[j].Name()
	})

	return res
}

/*
Run executes one or more commands. It returns an error if the command had
an unexpected result and a flag if the command was handled.
*/
func (c *SelectorConsole) Run(cmd string) (bool, error) {
	cmd = strings.TrimSpace(cmd)

	if cmd == "" {
		return true, nil
	}

	// Handle meta commands

	if strings.HasPrefix(cmd, "\\") {
		return true, c.runMetaCommand(cmd[1:])
	}

	// Handle registered commands

	cmdSplit := strings.Fields(cmd)

	if cmdObj, ok := c.cmdMap[cmdSplit[0]]; ok {
		return true, cmdObj.Run(cmdSplit[1:], c)
	}

	// Everything else is a selector expression

	return true, c.evalExpression(cmd)
}

/*
runMetaCommand executes a meta command (a command which is prefixed with a
backslash).
*/
func (c *SelectorConsole) runMetaCommand(cmd string) error {

	switch {

	case strings.HasPrefix(cmd, "v "):

		// Bind a variable to the result of an expression

		arg := strings.TrimSpace(cmd[2:])

		eq := strings.Index(arg, "=")
		if eq < 1 {
			return fmt.Errorf("Expected: \\v name=expression")
		}

		name := strings.TrimSpace(arg[:eq])

		sel, err := selector.MakeSelector("console", arg[eq+1:])
		if err != nil {
			return err
		}

		val := sel.EvalValue(c.env)
		c.env.Set(name, val)

		fmt.Fprintln(c.out, fmt.Sprintf("%v=%v", name, val))

		return nil

	case cmd == "e":

		// Display the environment

		for _, name := range c.env.Names() {
			fmt.Fprintln(c.out, fmt.Sprintf("%v=%v", name, c.env.Lookup(name)))
		}

		return nil

	case strings.HasPrefix(cmd, "p "):

		// Display the canonical form of an expression

		sel, err := selector.MakeSelector("console", cmd[2:])
		if err != nil {
			return err
		}

		fmt.Fprintln(c.out, sel.String())

		return nil
	}

	return fmt.Errorf("Unrecognized meta command: \\%v", cmd)
}

/*
evalExpression compiles a given selector expression and displays its
canonical form, its result value and its boolean result.
*/
func (c *SelectorConsole) evalExpression(src string) error {

	sel, err := selector.MakeSelector("console", src)
	if err != nil {
		return err
	}

	val := sel.EvalValue(c.env)

	fmt.Fprintln(c.out, sel.String())
	fmt.Fprintln(c.out, fmt.Sprintf("%v (matches: %v)", val, sel.Eval(c.env)))

	return nil
}
