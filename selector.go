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
Package selector contains the main API for compiling and evaluating JMS
style message selector expressions.

Example selector expression:

	color = 'red' AND size BETWEEN 10 AND 20

A selector is compiled once and can then be evaluated many times against
different environments. A compiled selector is immutable and can be shared
between goroutines.
*/
package selector

import (
	"devt.de/krotik/common/datautil"
	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/selector/interpreter"
	"devt.de/krotik/selector/parser"
)

/*
Selector is a compiled message selector expression.
*/
type Selector struct {
	ast *parser.ASTNode
}

/*
MakeSelector compiles a given selector expression. The name is used to
identify the input in error messages. An empty expression compiles to a
selector which matches everything.
*/
func MakeSelector(name string, src string) (*Selector, error) {

	ast, err := parser.ParseWithRuntime(name, src,
		interpreter.NewSelectorRuntimeProvider(name))
	if err != nil {
		return nil, err
	}

	if err := ast.Runtime.Validate(); err != nil {
		return nil, err
	}

	return &Selector{ast}, nil
}

/*
Eval evaluates this selector against a given environment. An unknown result
is treated as false.
*/
func (s *Selector) Eval(env interpreter.Env) bool {
	return s.ast.Runtime.(interpreter.CondRuntime).CondEvalBool(env) == interpreter.BoolTrue
}

/*
EvalValue evaluates this selector against a given environment and returns
the raw result value.
*/
func (s *Selector) EvalValue(env interpreter.Env) interpreter.Value {
	return s.ast.Runtime.(interpreter.CondRuntime).CondEval(env)
}

/*
AST returns the parse tree of this selector.
*/
func (s *Selector) AST() *parser.ASTNode {
	return s.ast
}

/*
String returns the canonical form of this selector. The returned string
parses back to an equivalent selector.
*/
func (s *Selector) String() string {
	res, err := parser.PrettyPrint(s.ast)
	errorutil.AssertOk(err)
	return res
}

/*
Pool of interned strings
*/
var internPool = datautil.NewMapCache(0, 0)

/*
Intern returns a stable copy of a given string. Callers which cannot
guarantee the lifetime of strings handed to an environment can route them
through this pool.
*/
func Intern(s string) string {
	if v, ok := internPool.Get(s); ok {
		return v.(string)
	}

	internPool.Put(s, s)
	return s
}
