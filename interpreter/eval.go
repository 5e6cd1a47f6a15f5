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
	"bytes"
	"regexp"

	"devt.de/krotik/selector/parser"
)

// Comparison runtime
// ==================

/*
Comparison operations by node name
*/
var compareOps = map[string]func(Value, Value) BoolOrNone{
	parser.NodeEQ:  Equals,
	parser.NodeNEQ: NotEquals,
	parser.NodeLT:  Less,
	parser.NodeGT:  Greater,
	parser.NodeLEQ: LessEq,
	parser.NodeGEQ: GreaterEq,
}

/*
Runtime for comparisons
*/
type comparisonRuntime struct {
	*exprItemRuntime
	op func(Value, Value) BoolOrNone
}

/*
comparisonRuntimeInst returns a new runtime component instance.
*/
func comparisonRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &comparisonRuntime{&exprItemRuntime{rtp, node}, compareOps[node.Name]}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *comparisonRuntime) CondEval(env Env) Value {
	return rt.CondEvalBool(env).Value()
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *comparisonRuntime) CondEvalBool(env Env) BoolOrNone {

	v1 := rt.child(0).CondEval(env)
	if v1.IsUnknown() {
		return BoolUnknown
	}

	return rt.op(v1, rt.child(1).CondEval(env))
}

// Arithmetic runtimes
// ===================

/*
Arithmetic operations by node name
*/
var arithmeticOps = map[string]func(Value, Value) Value{
	parser.NodePLUS:  Add,
	parser.NodeTIMES: Mult,
	parser.NodeDIV:   Div,
}

/*
Runtime for binary arithmetic
*/
type arithmeticRuntime struct {
	*exprItemRuntime
	op func(Value, Value) Value
}

/*
arithmeticRuntimeInst returns a new runtime component instance.
*/
func arithmeticRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &arithmeticRuntime{&exprItemRuntime{rtp, node}, arithmeticOps[node.Name]}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *arithmeticRuntime) CondEval(env Env) Value {
	return rt.op(rt.child(0).CondEval(env), rt.child(1).CondEval(env))
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *arithmeticRuntime) CondEvalBool(env Env) BoolOrNone {
	return ValueToBool(rt.CondEval(env))
}

/*
Runtime for unary and binary minus
*/
type minusRuntime struct {
	*exprItemRuntime
	folded bool // Flag if the operand is a directly negated literal
}

/*
minusRuntimeInst returns a new runtime component instance.
*/
func minusRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &minusRuntime{&exprItemRuntime{rtp, node}, false}
}

/*
Validate this node and all its child nodes. A unary minus of an exact
numeric literal is folded into the literal so that the smallest
representable integer is accepted.
*/
func (rt *minusRuntime) Validate() error {

	if len(rt.node.Children) == 1 && rt.node.Children[0].Name == parser.NodeEXACT {
		vrt := rt.node.Children[0].Runtime.(*valueRuntime)

		if err := vrt.decode(true); err != nil {
			return err
		}

		rt.folded = true
		return nil
	}

	return rt.exprItemRuntime.Validate()
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *minusRuntime) CondEval(env Env) Value {

	if len(rt.node.Children) == 1 {
		if rt.folded {

			// The child literal was decoded together with the minus sign

			return rt.child(0).CondEval(env)
		}
		return Neg(rt.child(0).CondEval(env))
	}

	return Sub(rt.child(0).CondEval(env), rt.child(1).CondEval(env))
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *minusRuntime) CondEvalBool(env Env) BoolOrNone {
	return ValueToBool(rt.CondEval(env))
}

// Boolean runtimes
// ================

/*
Runtime for or
*/
type orRuntime struct {
	*exprItemRuntime
}

/*
orRuntimeInst returns a new runtime component instance.
*/
func orRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &orRuntime{&exprItemRuntime{rtp, node}}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *orRuntime) CondEval(env Env) Value {
	return rt.CondEvalBool(env).Value()
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *orRuntime) CondEvalBool(env Env) BoolOrNone {

	bn1 := rt.child(0).CondEvalBool(env)
	if bn1 == BoolTrue {
		return BoolTrue
	}

	bn2 := rt.child(1).CondEvalBool(env)
	if bn2 == BoolTrue {
		return BoolTrue
	}

	if bn1 == BoolFalse && bn2 == BoolFalse {
		return BoolFalse
	}

	return BoolUnknown
}

/*
Runtime for and
*/
type andRuntime struct {
	*exprItemRuntime
}

/*
andRuntimeInst returns a new runtime component instance.
*/
func andRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &andRuntime{&exprItemRuntime{rtp, node}}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *andRuntime) CondEval(env Env) Value {
	return rt.CondEvalBool(env).Value()
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *andRuntime) CondEvalBool(env Env) BoolOrNone {

	bn1 := rt.child(0).CondEvalBool(env)
	if bn1 == BoolFalse {
		return BoolFalse
	}

	bn2 := rt.child(1).CondEvalBool(env)
	if bn2 == BoolFalse {
		return BoolFalse
	}

	if bn1 == BoolTrue && bn2 == BoolTrue {
		return BoolTrue
	}

	return BoolUnknown
}

/*
Runtime for not
*/
type notRuntime struct {
	*exprItemRuntime
}

/*
notRuntimeInst returns a new runtime component instance.
*/
func notRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &notRuntime{&exprItemRuntime{rtp, node}}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *notRuntime) CondEval(env Env) Value {
	return rt.CondEvalBool(env).Value()
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *notRuntime) CondEvalBool(env Env) BoolOrNone {

	bn := rt.child(0).CondEvalBool(env)
	if bn == BoolUnknown {
		return BoolUnknown
	}

	return boolToBON(bn == BoolFalse)
}

// IS NULL runtime
// ===============

/*
Runtime for is null and is not null
*/
type isNullRuntime struct {
	*exprItemRuntime
	expectNull bool
}

/*
isNullRuntimeInst returns a new runtime component instance.
*/
func isNullRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &isNullRuntime{&exprItemRuntime{rtp, node}, node.Name == parser.NodeISNULL}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *isNullRuntime) CondEval(env Env) Value {
	return rt.CondEvalBool(env).Value()
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *isNullRuntime) CondEvalBool(env Env) BoolOrNone {
	return boolToBON(rt.child(0).CondEval(env).IsUnknown() == rt.expectNull)
}

// LIKE runtime
// ============

/*
Runtime for like
*/
type likeRuntime struct {
	*exprItemRuntime
	compiledRegex *regexp.Regexp // Compiled regex of the constant pattern
}

/*
likeRuntimeInst returns a new runtime component instance.
*/
func likeRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &likeRuntime{&exprItemRuntime{rtp, node}, nil}
}

/*
Validate this node and all its child nodes. The pattern is constant and
compiled here.
*/
func (rt *likeRuntime) Validate() error {

	if err := rt.exprItemRuntime.Validate(); err != nil {
		return err
	}

	pattern := rt.node.Children[1].Token.Val

	escape := byte(0)
	hasEscape := false
	if len(rt.node.Children) > 2 {
		escape = rt.node.Children[2].Token.Val[0]
		hasEscape = true
	}

	re, err := regexp.Compile(likePatternToRegex(pattern, escape, hasEscape))
	if err != nil {
		return rt.rtp.newRuntimeError(ErrNotARegex, pattern, rt.node.Children[1])
	}

	rt.compiledRegex = re
	return nil
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *likeRuntime) CondEval(env Env) Value {
	return rt.CondEvalBool(env).Value()
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *likeRuntime) CondEvalBool(env Env) BoolOrNone {

	v := rt.child(0).CondEval(env)
	if v.Type() != TypeString {
		return BoolUnknown
	}

	return boolToBON(rt.compiledRegex.MatchString(v.Str()))
}

/*
likePatternToRegex translates a LIKE pattern into an anchored regex.
% matches any character sequence and _ matches a single character unless
preceded by the escape character. All other characters match themselves.
*/
func likePatternToRegex(pattern string, escape byte, hasEscape bool) string {
	var buf bytes.Buffer

	buf.WriteByte('^')

	escaped := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		if hasEscape && c == escape && !escaped {
			escaped = true
			continue
		}

		switch c {

		case '%':
			if escaped {
				buf.WriteByte(c)
			} else {
				buf.WriteString(".*")
			}

		case '_':
			if escaped {
				buf.WriteByte(c)
			} else {
				buf.WriteByte('.')
			}

		case '\\', '^', '$', '.', '*', '[':
			buf.WriteByte('\\')
			buf.WriteByte(c)

		case ']', '{', '}', '(', ')', '-', '+', '?', '|':

			// Disable any regex meaning inside a character class

			buf.WriteByte('[')
			buf.WriteByte(c)
			buf.WriteByte(']')

		default:
			buf.WriteByte(c)
		}

		escaped = false
	}

	buf.WriteByte('$')

	return buf.String()
}

// BETWEEN runtime
// ===============

/*
Runtime for between
*/
type betweenRuntime struct {
	*exprItemRuntime
}

/*
betweenRuntimeInst returns a new runtime component instance.
*/
func betweenRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &betweenRuntime{&exprItemRuntime{rtp, node}}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *betweenRuntime) CondEval(env Env) Value {
	return rt.CondEvalBool(env).Value()
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *betweenRuntime) CondEvalBool(env Env) BoolOrNone {

	ve := rt.child(0).CondEval(env)
	vl := rt.child(1).CondEval(env)
	vu := rt.child(2).CondEval(env)

	if ve.IsUnknown() || vl.IsUnknown() || vu.IsUnknown() {
		return BoolUnknown
	}

	return boolToBON(GreaterEq(ve, vl) == BoolTrue && LessEq(ve, vu) == BoolTrue)
}

// IN runtimes
// ===========

/*
Runtime for in
*/
type inRuntime struct {
	*exprItemRuntime
}

/*
inRuntimeInst returns a new runtime component instance.
*/
func inRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &inRuntime{&exprItemRuntime{rtp, node}}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *inRuntime) CondEval(env Env) Value {
	return rt.CondEvalBool(env).Value()
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *inRuntime) CondEvalBool(env Env) BoolOrNone {

	ve := rt.child(0).CondEval(env)
	if ve.IsUnknown() {
		return BoolUnknown
	}

	res := BoolFalse

	for i := 1; i < len(rt.node.Children); i++ {
		li := rt.child(i).CondEval(env)

		if li.IsUnknown() {
			res = BoolUnknown
			continue
		}

		if Equals(ve, li) == BoolTrue {
			return BoolTrue
		}
	}

	return res
}

/*
Runtime for not in
*/
type notInRuntime struct {
	*exprItemRuntime
}

/*
notInRuntimeInst returns a new runtime component instance.
*/
func notInRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &notInRuntime{&exprItemRuntime{rtp, node}}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *notInRuntime) CondEval(env Env) Value {
	return rt.CondEvalBool(env).Value()
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
A list element of an incompatible type makes the result unknown unless a
matching element is found.
*/
func (rt *notInRuntime) CondEvalBool(env Env) BoolOrNone {

	ve := rt.child(0).CondEval(env)
	if ve.IsUnknown() {
		return BoolUnknown
	}

	res := BoolTrue

	for i := 1; i < len(rt.node.Children); i++ {
		li := rt.child(i).CondEval(env)

		if li.IsUnknown() {
			res = BoolUnknown
			continue
		}

		if !sameType(ve, li) && !(numeric(ve) && numeric(li)) {
			res = BoolUnknown
			continue
		}

		if Equals(ve, li) == BoolTrue {
			return BoolFalse
		}
	}

	return res
}
