/*
 * Selector
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package parser

import (
	"bytes"
	"fmt"

	"devt.de/krotik/common/stringutil"
)

/*
ASTNode models a node in the parse tree.
*/
type ASTNode struct {
	Name     string     // Name of the node
	Token    *LexToken  // Token this node was built from
	Children []*ASTNode // Child nodes
	Runtime  Runtime    // Runtime component for this ASTNode

	binding int // Precedence level of this node in the tree
}

/*
String returns a string representation of this parse tree.
*/
func (n *ASTNode) String() string {
	var buf bytes.Buffer
	n.levelString(0, &buf)
	return buf.String()
}

/*
levelString renders a string representation of this node and its children.
*/
func (n *ASTNode) levelString(indent int, buf *bytes.Buffer) {

	buf.WriteString(stringutil.GenerateRollingString(" ", indent*2))
	buf.WriteString(n.Name)

	switch n.Name {
	case NodeIDENTIFIER, NodeSTRING, NodeEXACT, NodeAPPROX:
		buf.WriteString(fmt.Sprintf(": %q", n.Token.Val))
	}

	buf.WriteString("\n")

	for _, child := range n.Children {
		child.levelString(indent+1, buf)
	}
}

/*
Plain returns this parse tree as a plain data structure which can be
serialized e.g. as JSON.
*/
func (n *ASTNode) Plain() map[string]interface{} {
	ret := make(map[string]interface{})

	ret["name"] = n.Name

	if n.Token != nil && n.Token.Val != "" {
		ret["value"] = n.Token.Val
	}

	if len(n.Children) > 0 {
		children := make([]map[string]interface{}, len(n.Children))
		for i, child := range n.Children {
			children[i] = child.Plain()
		}
		ret["children"] = children
	}

	return ret
}

/*
Parser data structure
*/
type parser struct {
	name string          // Name to identify the input
	t    *Tokeniser      // Tokeniser the parser reads from
	rtp  RuntimeProvider // Runtime provider which creates runtime components
}

/*
Parse parses a given input string and returns the parse tree.
*/
func Parse(name string, input string) (*ASTNode, error) {
	return ParseWithRuntime(name, input, nil)
}

/*
ParseWithRuntime parses a given input string and decorates the resulting
parse tree with runtime components from a given runtime provider.
*/
func ParseWithRuntime(name string, input string, rtp RuntimeProvider) (*ASTNode, error) {
	p := &parser{name, NewTokeniser(name, input), rtp}

	tok, err := p.t.NextToken()
	if err != nil {
		return nil, err
	}

	// An empty expression is equivalent to true

	if tok.ID == TokenEOS {
		return p.node(NodeTRUE, LexToken{ID: TokenTRUE, Val: "true"}), nil
	}

	p.t.ReturnTokens(1)

	ast, err := p.orExpression()
	if err != nil {
		return nil, err
	}

	if tok, err = p.t.NextToken(); err != nil {
		return nil, err
	}

	if tok.ID != TokenEOS {
		return nil, p.newParserError(ErrExtraInput, tok)
	}

	return ast, nil
}

/*
node creates a new AST node and attaches its runtime component.
*/
func (p *parser) node(name string, token LexToken, children ...*ASTNode) *ASTNode {
	n := &ASTNode{name, &token, children, nil, nodeBindings[name]}

	if p.rtp != nil {
		n.Runtime = p.rtp.Runtime(n)
	}

	return n
}

/*
orExpression parses an OR concatenation of AND expressions.
*/
func (p *parser) orExpression() (*ASTNode, error) {
	e, err := p.andExpression()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		if tok.ID != TokenOR {
			p.t.ReturnTokens(1)
			return e, nil
		}

		e2, err := p.andExpression()
		if err != nil {
			return nil, err
		}

		e = p.node(NodeOR, tok, e, e2)
	}
}

/*
andExpression parses an AND concatenation of comparison expressions.
*/
func (p *parser) andExpression() (*ASTNode, error) {
	e, err := p.comparisonExpression()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		if tok.ID != TokenAND {
			p.t.ReturnTokens(1)
			return e, nil
		}

		e2, err := p.comparisonExpression()
		if err != nil {
			return nil, err
		}

		e = p.node(NodeAND, tok, e, e2)
	}
}

/*
comparisonExpression parses a comparison between two additive expressions or
one of the special comparison forms (IS NULL, LIKE, BETWEEN, IN).
*/
func (p *parser) comparisonExpression() (*ASTNode, error) {
	tok, err := p.t.NextToken()
	if err != nil {
		return nil, err
	}

	// Prefixed NOT applies to the whole comparison

	if tok.ID == TokenNOT {
		e, err := p.comparisonExpression()
		if err != nil {
			return nil, err
		}
		return p.node(NodeNOT, tok, e), nil
	}

	p.t.ReturnTokens(1)

	e1, err := p.addExpression()
	if err != nil {
		return nil, err
	}

	if tok, err = p.t.NextToken(); err != nil {
		return nil, err
	}

	switch tok.ID {

	case TokenIS:

		// The rest must be NULL or NOT NULL

		tok2, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		if tok2.ID == TokenNULL {
			return p.node(NodeISNULL, tok, e1), nil
		}

		if tok2.ID == TokenNOT {
			tok3, err := p.t.NextToken()
			if err != nil {
				return nil, err
			}

			if tok3.ID == TokenNULL {
				return p.node(NodeISNOTNULL, tok, e1), nil
			}

			return nil, p.newParserError(ErrExpectedNullAfterIs, tok3)
		}

		return nil, p.newParserError(ErrExpectedNullAfterIs, tok2)

	case TokenNOT:
		return p.specialComparison(e1, tok, true)

	case TokenBETWEEN, TokenLIKE, TokenIN:
		p.t.ReturnTokens(1)
		return p.specialComparison(e1, tok, false)

	case TokenEQUAL, TokenNEQ, TokenLESS, TokenGRT, TokenLSEQ, TokenGREQ:

		name := map[LexTokenID]string{
			TokenEQUAL: NodeEQ,
			TokenNEQ:   NodeNEQ,
			TokenLESS:  NodeLT,
			TokenGRT:   NodeGT,
			TokenLSEQ:  NodeLEQ,
			TokenGREQ:  NodeGEQ,
		}[tok.ID]

		e2, err := p.addExpression()
		if err != nil {
			return nil, err
		}

		return p.node(name, tok, e1, e2), nil
	}

	p.t.ReturnTokens(1)
	return e1, nil
}

/*
specialComparison parses the LIKE, BETWEEN and IN forms. The given negTok is
the token which started the form (or the preceding NOT token if the form is
negated).
*/
func (p *parser) specialComparison(e1 *ASTNode, negTok LexToken, negated bool) (*ASTNode, error) {

	negate := func(n *ASTNode) *ASTNode {
		if negated {
			return p.node(NodeNOT, negTok, n)
		}
		return n
	}

	tok, err := p.t.NextToken()
	if err != nil {
		return nil, err
	}

	switch tok.ID {

	case TokenLIKE:

		st, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		if st.ID != TokenSTRING {
			return nil, p.newParserError(ErrExpectedLikeString, st)
		}

		children := []*ASTNode{e1, p.node(NodeSTRING, st)}

		et, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		if et.ID == TokenESCAPE {
			est, err := p.t.NextToken()
			if err != nil {
				return nil, err
			}

			if est.ID != TokenSTRING {
				return nil, p.newParserError(ErrExpectedEscapeString, est)
			}

			if len(est.Val) != 1 {
				return nil, p.newParserError(ErrEscapeSingleChar, est)
			}

			if est.Val == "%" || est.Val == "_" {
				return nil, p.newParserError(ErrEscapeChar, est)
			}

			children = append(children, p.node(NodeSTRING, est))

		} else {
			p.t.ReturnTokens(1)
		}

		return negate(p.node(NodeLIKE, tok, children...)), nil

	case TokenBETWEEN:

		lower, err := p.addExpression()
		if err != nil {
			return nil, err
		}

		at, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		if at.ID != TokenAND {
			return nil, p.newParserError(ErrExpectedAnd, at)
		}

		upper, err := p.addExpression()
		if err != nil {
			return nil, err
		}

		return negate(p.node(NodeBETWEEN, tok, e1, lower, upper)), nil

	case TokenIN:

		lp, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		if lp.ID != TokenLPAREN {
			return nil, p.newParserError(ErrMissingLparenAfterIn, lp)
		}

		children := []*ASTNode{e1}

		for {
			el, err := p.addExpression()
			if err != nil {
				return nil, err
			}

			children = append(children, el)

			ct, err := p.t.NextToken()
			if err != nil {
				return nil, err
			}

			if ct.ID == TokenCOMMA {
				continue
			}

			if ct.ID != TokenRPAREN {
				return nil, p.newParserError(ErrMissingRparenAfterIn, ct)
			}

			break
		}

		name := NodeIN
		if negated {
			name = NodeNOTIN
		}

		return p.node(name, tok, children...), nil
	}

	return nil, p.newParserError(ErrExpectedSpecial, tok)
}

/*
addExpression parses a + and - concatenation of multiplicative expressions.
*/
func (p *parser) addExpression() (*ASTNode, error) {
	e, err := p.multiplyExpression()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		var name string

		switch tok.ID {
		case TokenPLUS:
			name = NodePLUS
		case TokenMINUS:
			name = NodeMINUS
		default:
			p.t.ReturnTokens(1)
			return e, nil
		}

		e2, err := p.multiplyExpression()
		if err != nil {
			return nil, err
		}

		e = p.node(name, tok, e, e2)
	}
}

/*
multiplyExpression parses a * and / concatenation of unary expressions.
*/
func (p *parser) multiplyExpression() (*ASTNode, error) {
	e, err := p.unaryArithExpression()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		var name string

		switch tok.ID {
		case TokenMULT:
			name = NodeTIMES
		case TokenDIV:
			name = NodeDIV
		default:
			p.t.ReturnTokens(1)
			return e, nil
		}

		e2, err := p.unaryArithExpression()
		if err != nil {
			return nil, err
		}

		e = p.node(name, tok, e, e2)
	}
}

/*
unaryArithExpression parses a prefixed or bracketed expression.
*/
func (p *parser) unaryArithExpression() (*ASTNode, error) {
	tok, err := p.t.NextToken()
	if err != nil {
		return nil, err
	}

	switch tok.ID {

	case TokenLPAREN:

		e, err := p.orExpression()
		if err != nil {
			return nil, err
		}

		rt, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		if rt.ID != TokenRPAREN {
			return nil, p.newParserError(ErrMissingRparen, rt)
		}

		return e, nil

	case TokenPLUS:

		// Unary plus is a no-op

		return p.unaryArithExpression()

	case TokenMINUS:

		nt, err := p.t.NextToken()
		if err != nil {
			return nil, err
		}

		// Special case for negative numerics so that the smallest
		// representable integer can be written as a literal

		if nt.ID == TokenNUMERICEXACT {
			n := p.node(NodeMINUS, tok, p.node(NodeEXACT, nt))
			n.binding = bindingUnary
			return n, nil
		}

		p.t.ReturnTokens(1)

		e, err := p.unaryArithExpression()
		if err != nil {
			return nil, err
		}

		n := p.node(NodeMINUS, tok, e)
		n.binding = bindingUnary
		return n, nil
	}

	p.t.ReturnTokens(1)
	return p.primaryExpression()
}

/*
primaryExpression parses an identifier or a literal.
*/
func (p *parser) primaryExpression() (*ASTNode, error) {
	tok, err := p.t.NextToken()
	if err != nil {
		return nil, err
	}

	switch tok.ID {
	case TokenIDENTIFIER:
		return p.node(NodeIDENTIFIER, tok), nil
	case TokenSTRING:
		return p.node(NodeSTRING, tok), nil
	case TokenTRUE:
		return p.node(NodeTRUE, tok), nil
	case TokenFALSE:
		return p.node(NodeFALSE, tok), nil
	case TokenNUMERICEXACT:
		return p.node(NodeEXACT, tok), nil
	case TokenNUMERICAPPROX:
		return p.node(NodeAPPROX, tok), nil
	}

	return nil, p.newParserError(ErrExpectedPrimary, tok)
}
