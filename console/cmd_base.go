/*
 * Selector
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package console

import (
	"fmt"

	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/selector/config"
)

// Command: ver
// ============

/*
CommandVer is a command name.
*/
const CommandVer = "ver"

/*
CmdVer displays version information.
*/
type CmdVer struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdVer) Name() string {
	return CommandVer
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdVer) ShortDescription() string {
	return "Displays version information."
}

/*
LongDescription returns an extensive description of the command (can be
multiple lines)
*/
func (c *CmdVer) LongDescription() string {
	return "Displays version information."
}

/*
Run executes the command.
*/
func (c *CmdVer) Run(args []string, capi CommandConsoleAPI) error {

	fmt.Fprintln(capi.Out(), fmt.Sprintf("Selector %v", config.ProductVersion))

	return nil
}

// Command: help
// =============

/*
CommandHelp is a command name.
*/
const CommandHelp = "help"

/*
CmdHelp displays descriptions of other commands.
*/
type CmdHelp struct {
}

/*
Name returns the command name (as it should be typed)
*/
func (c *CmdHelp) Name() string {
	return CommandHelp
}

/*
ShortDescription returns a short description of the command (single line)
*/
func (c *CmdHelp) ShortDescription() string {
	return "Displays descriptions of other commands."
}

/*
LongDescription returns an extensive description of the command (can be
multiple lines)
*/
func (c *CmdHelp) LongDescription() string {
	return "Displays descriptions of other commands."
}

/*
Run executes the command.
*/
func (c *CmdHelp) Run(args []string, capi CommandConsoleAPI) error {

	if len(args) > 0 {

		cmds := capi.Commands()

		name := args[0]

		for _, cmd := range cmds {
			if cmd.Name() == name {
				capi.Out().Write([]byte(cmd.LongDescription()))
				capi.Out().Write([]byte("\n"))
				return nil
			}
		}

		return fmt.Errorf("Unknown command: %s", name)
	}

	capi.Out().Write([]byte("Input is compiled and evaluated as a selector expression.\n"))
	capi.Out().Write([]byte("Meta commands: \\v name=expr  \\e  \\p expr\n"))
	capi.Out().Write([]byte("\n"))

	cmds := capi.Commands()

	maxNameLen := 0
	for _, cmd := range cmds {
		if l := len(cmd.Name()); l > maxNameLen {
			maxNameLen = l
		}
	}

	for _, cmd := range cmds {
		capi.Out().Write([]byte(cmd.Name()))
		capi.Out().Write([]byte(stringutil.GenerateRollingString(" ", maxNameLen-len(cmd.Name())+2)))
		capi.Out().Write([]byte(cmd.ShortDescription()))
		capi.Out().Write([]byte("\n"))
	}

	return nil
}
