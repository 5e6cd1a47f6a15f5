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
Package parser contains the selector expression parser.

Lexer

Tokenise() is a lexer function which reads a single token from a given input
string and returns the token and the remaining input. The Tokeniser object
wraps it with a token buffer which supports returning already read tokens.

Parser

Parse() is a recursive descent parser which produces a parse tree from a
given selector expression.

ParseWithRuntime() parses a given input and decorates the resulting parse tree
with runtime components which can be used to evaluate the parsed expression.
*/
package parser

/*
LexTokenID represents a unique lexer token ID
*/
type LexTokenID int

/*
Available lexer token types
*/
const (
	TokenError LexTokenID = iota // Lexing error token with a message as val
	TokenEOS                     // End-of-string token

	TOKENodeSYMBOLS // Used to separate symbols from other tokens in this list

	TokenLPAREN
	TokenRPAREN
	TokenCOMMA
	TokenPLUS
	TokenMINUS
	TokenMULT
	TokenDIV
	TokenEQUAL
	TokenNEQ
	TokenLESS
	TokenGRT
	TokenLSEQ
	TokenGREQ

	TOKENodeVALUES // Used to separate value tokens from symbols in this list

	TokenIDENTIFIER
	TokenSTRING
	TokenNUMERICEXACT
	TokenNUMERICAPPROX

	TOKENodeKEYWORDS // Used to separate keywords from other tokens in this list

	TokenNULL
	TokenTRUE
	TokenFALSE
	TokenNOT
	TokenAND
	TokenOR
	TokenIN
	TokenIS
	TokenBETWEEN
	TokenLIKE
	TokenESCAPE
)

/*
Available parser AST node types
*/
const (
	NodeEOF = "EOF"

	NodeIDENTIFIER = "identifier"
	NodeSTRING     = "string"
	NodeEXACT      = "exact"
	NodeAPPROX     = "approx"
	NodeTRUE       = "true"
	NodeFALSE      = "false"

	// Boolean operations

	NodeOR  = "or"
	NodeAND = "and"
	NodeNOT = "not"

	NodeGEQ = ">="
	NodeLEQ = "<="
	NodeNEQ = "<>"
	NodeEQ  = "="
	NodeGT  = ">"
	NodeLT  = "<"

	NodeISNULL    = "isnull"
	NodeISNOTNULL = "isnotnull"

	// List operations

	NodeIN    = "in"
	NodeNOTIN = "notin"

	// String operations

	NodeLIKE = "like"

	// Range operations

	NodeBETWEEN = "between"

	// Simple arithmetic expressions

	NodePLUS  = "plus"
	NodeMINUS = "minus"
	NodeTIMES = "times"
	NodeDIV   = "div"
)

/*
Binding levels of the parse tree nodes - these mirror the precedence levels
of the grammar and are used by the pretty printer to decide where brackets
are needed.
*/
const (
	bindingOr         = 10
	bindingAnd        = 20
	bindingNot        = 25
	bindingComparison = 30
	bindingAdd        = 40
	bindingMult       = 50
	bindingUnary      = 60
	bindingPrimary    = 70
)

/*
Map of binding levels for AST nodes - unary minus nodes get their binding
corrected by the parser.
*/
var nodeBindings = map[string]int{
	NodeOR:  bindingOr,
	NodeAND: bindingAnd,
	NodeNOT: bindingNot,

	NodeGEQ:       bindingComparison,
	NodeLEQ:       bindingComparison,
	NodeNEQ:       bindingComparison,
	NodeEQ:        bindingComparison,
	NodeGT:        bindingComparison,
	NodeLT:        bindingComparison,
	NodeISNULL:    bindingComparison,
	NodeISNOTNULL: bindingComparison,
	NodeIN:        bindingComparison,
	NodeNOTIN:     bindingComparison,
	NodeLIKE:      bindingComparison,
	NodeBETWEEN:   bindingComparison,

	NodePLUS:  bindingAdd,
	NodeMINUS: bindingAdd,
	NodeTIMES: bindingMult,
	NodeDIV:   bindingMult,

	NodeIDENTIFIER: bindingPrimary,
	NodeSTRING:     bindingPrimary,
	NodeEXACT:      bindingPrimary,
	NodeAPPROX:     bindingPrimary,
	NodeTRUE:       bindingPrimary,
	NodeFALSE:      bindingPrimary,
}
