/*
 * Selector
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package interpreter

import (
	"errors"
	"fmt"

	"devt.de/krotik/selector/parser"
)

/*
newRuntimeError creates a new RuntimeError object.
*/
func (rtp *SelectorRuntimeProvider) newRuntimeError(t error, d string, node *parser.ASTNode) error {
	source := rtp.Name
	line := 0
	pos := 0

	if node.Token != nil {
		line = node.Token.Lline
		pos = node.Token.Lpos
	}

	return &RuntimeError{source, t, d, node, line, pos}
}

/*
RuntimeError is a runtime related error.
*/
type RuntimeError struct {
	Source string          // Name of the source which was given to the parser
	Type   error           // Error type (to be used for equal checks)
	Detail string          // Details of this error
	Node   *parser.ASTNode // AST node where the error occurred
	Line   int             // Line of the error
	Pos    int             // Position of the error
}

/*
Error returns a human-readable string representation of this error.
*/
func (re *RuntimeError) Error() string {
	ret := fmt.Sprintf("Illegal selector in %s: '%s': %v", re.Source, re.Detail, re.Type)

	if re.Line != 0 {
		return fmt.Sprintf("%s (Line:%d Pos:%d)", ret, re.Line, re.Pos)
	}

	return ret
}

/*
Runtime related error types
*/
var (
	ErrInvalidConstruct = errors.New("Invalid construct")
	ErrIntegerLiteral   = errors.New("integer literal too big")
	ErrFloatLiteral     = errors.New("floating literal overflow/underflow")
	ErrNotARegex        = errors.New("invalid LIKE pattern")
)
