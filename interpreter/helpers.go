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
Package interpreter contains the selector interpreter. It decorates selector
parse trees with runtime components which evaluate the tree against an
environment of identifier bindings.

Evaluation is total - runtime failures like type mismatches, unbound
identifiers or division by zero produce the unknown value and never an
error.
*/
package interpreter

import (
	"strconv"
	"strings"

	"devt.de/krotik/selector/parser"
)

/*
CondRuntime is a runtime component of a selector condition which can be
evaluated against an environment.
*/
type CondRuntime interface {

	/*
	   CondEval evaluates this runtime component to a value.
	*/
	CondEval(env Env) Value

	/*
	   CondEvalBool evaluates this runtime component to a truth value.
	*/
	CondEvalBool(env Env) BoolOrNone
}

/*
Instance function for selector runtime components
*/
type selInst func(*SelectorRuntimeProvider, *parser.ASTNode) parser.Runtime

/*
Runtime map for selector runtime components
*/
var providerMap = map[string]selInst{
	parser.NodeIDENTIFIER: identifierRuntimeInst,
	parser.NodeSTRING:     valueRuntimeInst,
	parser.NodeEXACT:      valueRuntimeInst,
	parser.NodeAPPROX:     valueRuntimeInst,
	parser.NodeTRUE:       valueRuntimeInst,
	parser.NodeFALSE:      valueRuntimeInst,

	parser.NodeOR:  orRuntimeInst,
	parser.NodeAND: andRuntimeInst,
	parser.NodeNOT: notRuntimeInst,

	parser.NodeEQ:  comparisonRuntimeInst,
	parser.NodeNEQ: comparisonRuntimeInst,
	parser.NodeLT:  comparisonRuntimeInst,
	parser.NodeGT:  comparisonRuntimeInst,
	parser.NodeLEQ: comparisonRuntimeInst,
	parser.NodeGEQ: comparisonRuntimeInst,

	parser.NodeISNULL:    isNullRuntimeInst,
	parser.NodeISNOTNULL: isNullRuntimeInst,

	parser.NodeLIKE:    likeRuntimeInst,
	parser.NodeBETWEEN: betweenRuntimeInst,
	parser.NodeIN:      inRuntimeInst,
	parser.NodeNOTIN:   notInRuntimeInst,

	parser.NodePLUS:  arithmeticRuntimeInst,
	parser.NodeMINUS: minusRuntimeInst,
	parser.NodeTIMES: arithmeticRuntimeInst,
	parser.NodeDIV:   arithmeticRuntimeInst,
}

/*
SelectorRuntimeProvider decorates a selector parse tree with runtime
components.
*/
type SelectorRuntimeProvider struct {
	Name string // Name to identify the input
}

/*
NewSelectorRuntimeProvider creates a new SelectorRuntimeProvider object.
*/
func NewSelectorRuntimeProvider(name string) *SelectorRuntimeProvider {
	return &SelectorRuntimeProvider{name}
}

/*
Runtime returns a runtime component for a given ASTNode.
*/
func (rtp *SelectorRuntimeProvider) Runtime(node *parser.ASTNode) parser.Runtime {
	if inst, ok := providerMap[node.Name]; ok {
		return inst(rtp, node)
	}
	return invalidRuntimeInst(rtp, node)
}

// Abstract runtime
// ================

/*
Abstract runtime for selector runtime components
*/
type exprItemRuntime struct {
	rtp  *SelectorRuntimeProvider
	node *parser.ASTNode
}

/*
Validate this node and all its child nodes.
*/
func (rt *exprItemRuntime) Validate() error {
	for _, child := range rt.node.Children {
		if err := child.Runtime.Validate(); err != nil {
			return err
		}
	}
	return nil
}

/*
Eval evaluate this runtime component.
*/
func (rt *exprItemRuntime) Eval() (interface{}, error) {
	return nil, rt.rtp.newRuntimeError(ErrInvalidConstruct, rt.node.Name, rt.node)
}

/*
child returns the condition runtime of a given child node.
*/
func (rt *exprItemRuntime) child(i int) CondRuntime {
	return rt.node.Children[i].Runtime.(CondRuntime)
}

// Not implemented runtime
// =======================

/*
Special runtime for invalid constructs.
*/
type invalidRuntime struct {
	*exprItemRuntime
}

/*
invalidRuntimeInst returns a new runtime component instance.
*/
func invalidRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &invalidRuntime{&exprItemRuntime{rtp, node}}
}

/*
Validate this node and all its child nodes.
*/
func (rt *invalidRuntime) Validate() error {
	return rt.rtp.newRuntimeError(ErrInvalidConstruct, rt.node.Name, rt.node)
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *invalidRuntime) CondEval(env Env) Value {
	return Value{}
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *invalidRuntime) CondEvalBool(env Env) BoolOrNone {
	return BoolUnknown
}

// Value runtime
// =============

/*
Runtime for literal values
*/
type valueRuntime struct {
	*exprItemRuntime
	val Value
}

/*
valueRuntimeInst returns a new runtime component instance.
*/
func valueRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &valueRuntime{&exprItemRuntime{rtp, node}, Value{}}
}

/*
Validate this node and all its child nodes. Numeric literals are decoded
here so that malformed literals surface as compile errors.
*/
func (rt *valueRuntime) Validate() error {
	return rt.decode(false)
}

/*
decode decodes the literal value of this runtime. Exact numeric literals
can be decoded together with a preceding unary minus so that the smallest
representable integer is accepted.
*/
func (rt *valueRuntime) decode(negate bool) error {

	switch rt.node.Name {

	case parser.NodeTRUE:
		rt.val = BoolValue(true)

	case parser.NodeFALSE:
		rt.val = BoolValue(false)

	case parser.NodeSTRING:
		rt.val = StringValue(rt.node.Token.Val)

	case parser.NodeEXACT:
		i, err := parseExactLiteral(rt.node.Token.Val, negate)
		if err != nil {
			return rt.rtp.newRuntimeError(err, rt.node.Token.Val, rt.node)
		}
		rt.val = ExactValue(i)

	case parser.NodeAPPROX:
		f, err := parseApproxLiteral(rt.node.Token.Val)
		if err != nil {
			return rt.rtp.newRuntimeError(err, rt.node.Token.Val, rt.node)
		}
		rt.val = InexactValue(f)
	}

	return nil
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *valueRuntime) CondEval(env Env) Value {
	return rt.val
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *valueRuntime) CondEvalBool(env Env) BoolOrNone {
	return ValueToBool(rt.val)
}

/*
parseExactLiteral decodes an exact numeric literal. Underscore separators
and a trailing l or L are removed, the base is determined by the literal
prefix. Literals with a base prefix may use the full unsigned 64-bit range
and are reinterpreted as signed values.
*/
func parseExactLiteral(lexeme string, negate bool) (int64, error) {
	s := strings.Replace(lexeme, "_", "", -1)
	s = strings.TrimRight(s, "lL")

	base := 10
	if len(s) > 1 && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		s = s[2:]
	} else if len(s) > 1 && (s[1] == 'b' || s[1] == 'B') {
		base = 2
		s = s[2:]
	} else if len(s) > 1 && s[0] == '0' {
		base = 8
	}

	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, ErrIntegerLiteral
	}

	if base != 10 {
		r := int64(v)
		if negate {
			r = -r
		}
		return r, nil
	}

	if v <= 1<<63-1 {
		r := int64(v)
		if negate {
			r = -r
		}
		return r, nil
	}

	if negate && v == 1<<63 {
		return -1 << 63, nil
	}

	return 0, ErrIntegerLiteral
}

/*
parseApproxLiteral decodes an approximate numeric literal. Underscore
separators and a trailing f, F, d or D are removed.
*/
func parseApproxLiteral(lexeme string) (float64, error) {
	s := strings.Replace(lexeme, "_", "", -1)
	s = strings.TrimRight(s, "fFdD")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrFloatLiteral
	}

	// ParseFloat gives no error if a nonzero literal underflows to zero

	if f == 0 {
		m, sep := strings.ToLower(s), "e"
		if strings.HasPrefix(m, "0x") {
			m, sep = m[2:], "p"
		}
		if k := strings.Index(m, sep); k >= 0 {
			m = m[:k]
		}
		if strings.Trim(m, "0.") != "" {
			return 0, ErrFloatLiteral
		}
	}

	return f, nil
}

// Identifier runtime
// ==================

/*
Runtime for identifier lookups
*/
type identifierRuntime struct {
	*exprItemRuntime
}

/*
identifierRuntimeInst returns a new runtime component instance.
*/
func identifierRuntimeInst(rtp *SelectorRuntimeProvider, node *parser.ASTNode) parser.Runtime {
	return &identifierRuntime{&exprItemRuntime{rtp, node}}
}

/*
CondEval evaluates this condition runtime element.
*/
func (rt *identifierRuntime) CondEval(env Env) Value {
	return env.Lookup(rt.node.Token.Val)
}

/*
CondEvalBool evaluates this condition runtime element to a truth value.
*/
func (rt *identifierRuntime) CondEvalBool(env Env) BoolOrNone {
	return ValueToBool(rt.CondEval(env))
}
