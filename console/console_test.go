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
	"bytes"
	"strings"
	"testing"
)

func runCommands(t *testing.T, con CommandConsole, cmds []string) string {
	var out bytes.Buffer

	con.(*SelectorConsole).out = &out

	for _, cmd := range cmds {
		if _, err := con.Run(cmd); err != nil {
			out.WriteString(err.Error())
			out.WriteString("\n")
		}
	}

	return out.String()
}

func TestConsoleEval(t *testing.T) {

	con := NewConsole(nil)

	res := runCommands(t, con, []string{
		"\\v A='Bye, bye cruel world'",
		"\\v N=42.0",
		"\\v M=39",
		"",
		"A LIKE '%cru_l%'",
		"N*M+19 < N*(M+19)",
		"\\e",
	})

	expected := `A=STRING:'Bye, bye cruel world'
N=APPROX:42
M=EXACT:39
A LIKE '%cru_l%'
BOOL:true (matches: true)
N * M + 19 < N * (M + 19)
BOOL:true (matches: true)
A=STRING:'Bye, bye cruel world'
M=EXACT:39
N=APPROX:42
`

	if res != expected {
		t.Error("Unexpected console output:", res, "expected was:", expected)
		return
	}
}

func TestConsoleCanonical(t *testing.T) {

	con := NewConsole(nil)

	res := runCommands(t, con, []string{
		"\\p not a=b or c between 1 and 2",
	})

	if res != "NOT a = b OR c BETWEEN 1 AND 2\n" {
		t.Error("Unexpected console output:", res)
		return
	}
}

func TestConsoleErrors(t *testing.T) {

	con := NewConsole(nil)

	res := runCommands(t, con, []string{
		"a = = b",
		"\\v broken",
		"\\x",
	})

	if !strings.Contains(res, "Illegal selector in console:") {
		t.Error("Unexpected console output:", res)
		return
	}

	if !strings.Contains(res, "Expected: \\v name=expression") {
		t.Error("Unexpected console output:", res)
		return
	}

	if !strings.Contains(res, "Unrecognized meta command: \\x") {
		t.Error("Unexpected console output:", res)
		return
	}
}

func TestConsoleCommands(t *testing.T) {

	con := NewConsole(nil)

	res := runCommands(t, con, []string{
		"ver",
		"help",
		"help ver",
	})

	if !strings.Contains(res, "Selector 1.0.0") {
		t.Error("Unexpected console output:", res)
		return
	}

	if !strings.Contains(res, "help  Displays descriptions of other commands.") {
		t.Error("Unexpected console output:", res)
		return
	}

	if !strings.Contains(res, "Displays version information.") {
		t.Error("Unexpected console output:", res)
		return
	}

	if res := len(con.Commands()); res != 2 {
		t.Error("Unexpected number of commands:", res)
		return
	}
}
