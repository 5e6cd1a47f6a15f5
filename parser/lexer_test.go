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
	"fmt"
	"testing"
)

func TestSimpleLexing(t *testing.T) {

	// Test empty string lexing

	if res := fmt.Sprint(LexToList("mytest", "    \t   ")); res != "[EOS]" {
		t.Error("Unexpected lexer result:", res)
		return
	}

	if res := fmt.Sprint(LexToList("mytest", "  a =b")); res != `["a" = "b" EOS]` {
		t.Error("Unexpected lexer result:", res)
		return
	}

	if res := fmt.Sprint(LexToList("mytest", " not 'hello kitty''s friend' = Is null ")); res !=
		`[<NOT> "hello kitty's friend" = <IS> <NULL> EOS]` {
		t.Error("Unexpected lexer result:", res)
		return
	}

	if res := fmt.Sprint(LexToList("mytest", "(a+6)*7.5/1e6")); res !=
		`[( "a" + "6" ) * "7.5" / "1e6" EOS]` {
		t.Error("Unexpected lexer result:", res)
		return
	}

	// Test lexical error

	if res := fmt.Sprint(LexToList("mytest", "a ^ b")); res !=
		`["a" Error: ^ b (Line 1, Pos 3)]` {
		t.Error("Unexpected lexer result:", res)
		return
	}
}

func tokeniseSuccess(t *testing.T, input string, id LexTokenID, val string, rest string) {
	tok, _, r, ok := Tokenise(input)

	if !ok || tok.ID != id || tok.Val != val || r != rest {
		t.Error("Unexpected tokenise result for:", input, "-", tok, r, ok)
	}
}

func tokeniseFail(t *testing.T, input string) {
	_, _, r, ok := Tokenise(input)

	if ok || r != input {
		t.Error("Tokenise should fail without consuming input for:", input)
	}
}

func TestTokeniseSuccess(t *testing.T) {

	tokeniseSuccess(t, "", TokenEOS, "", "")
	tokeniseSuccess(t, " ", TokenEOS, "", "")
	tokeniseSuccess(t, "null_123+blah", TokenIDENTIFIER, "null_123", "+blah")
	tokeniseSuccess(t, "\"null-123\"+blah", TokenIDENTIFIER, "null-123", "+blah")
	tokeniseSuccess(t, "\"This is an \"\"odd!\"\" identifier\"+blah", TokenIDENTIFIER,
		"This is an \"odd!\" identifier", "+blah")
	tokeniseSuccess(t, "null+blah", TokenNULL, "null", "+blah")
	tokeniseSuccess(t, "Is nOt null", TokenIS, "Is", " nOt null")
	tokeniseSuccess(t, "nOt null", TokenNOT, "nOt", " null")
	tokeniseSuccess(t, "'Hello World'", TokenSTRING, "Hello World", "")
	tokeniseSuccess(t, "'Hello World''s end'a bit more", TokenSTRING, "Hello World's end", "a bit more")
	tokeniseSuccess(t, "=blah", TokenEQUAL, "=", "blah")
	tokeniseSuccess(t, "<> Identifier", TokenNEQ, "<>", " Identifier")
	tokeniseSuccess(t, "<= Identifier", TokenLSEQ, "<=", " Identifier")
	tokeniseSuccess(t, ">= Identifier", TokenGREQ, ">=", " Identifier")
	tokeniseSuccess(t, "< Identifier", TokenLESS, "<", " Identifier")
	tokeniseSuccess(t, "> Identifier", TokenGRT, ">", " Identifier")
	tokeniseSuccess(t, "(a and b) not c", TokenLPAREN, "(", "a and b) not c")
	tokeniseSuccess(t, ") not c", TokenRPAREN, ")", " not c")
	tokeniseSuccess(t, "017kill", TokenNUMERICEXACT, "017", "kill")
	tokeniseSuccess(t, "019kill", TokenNUMERICEXACT, "01", "9kill")
	tokeniseSuccess(t, "0kill", TokenNUMERICEXACT, "0", "kill")
	tokeniseSuccess(t, "0.kill", TokenNUMERICAPPROX, "0.", "kill")
	tokeniseSuccess(t, "3.1415=pi", TokenNUMERICAPPROX, "3.1415", "=pi")
	tokeniseSuccess(t, ".25.kill", TokenNUMERICAPPROX, ".25", ".kill")
	tokeniseSuccess(t, "2e5.kill", TokenNUMERICAPPROX, "2e5", ".kill")
	tokeniseSuccess(t, "3.e50easy to kill", TokenNUMERICAPPROX, "3.e50", "easy to kill")
	tokeniseSuccess(t, "34.25e+50easy to kill", TokenNUMERICAPPROX, "34.25e+50", "easy to kill")
	tokeniseSuccess(t, "34de", TokenNUMERICAPPROX, "34d", "e")
	tokeniseSuccess(t, "34fuller", TokenNUMERICAPPROX, "34f", "uller")
	tokeniseSuccess(t, "34Longer", TokenNUMERICEXACT, "34L", "onger")
	tokeniseSuccess(t, "34littler", TokenNUMERICEXACT, "34l", "ittler")
	tokeniseSuccess(t, "034Longer", TokenNUMERICEXACT, "034L", "onger")
	tokeniseSuccess(t, "034littler", TokenNUMERICEXACT, "034l", "ittler")
	tokeniseSuccess(t, "0X34littler", TokenNUMERICEXACT, "0X34l", "ittler")
	tokeniseSuccess(t, "0X3456_fffflittler", TokenNUMERICEXACT, "0X3456_ffffl", "ittler")
	tokeniseSuccess(t, "0xdead_beafittler", TokenNUMERICEXACT, "0xdead_beaf", "ittler")
	tokeniseSuccess(t, "0x800p-3f", TokenNUMERICAPPROX, "0x800p-3f", "")
	tokeniseSuccess(t, "0b111_111 ", TokenNUMERICEXACT, "0b111_111", " ")
}

func TestTokeniseFailure(t *testing.T) {

	tokeniseFail(t, "'Embedded 123")
	tokeniseFail(t, "'This isn''t fair")
	tokeniseFail(t, "\"Unterminated identifier")
	tokeniseFail(t, "^")
	tokeniseFail(t, "!")
	tokeniseFail(t, ".e5")
	tokeniseFail(t, "34e")
	tokeniseFail(t, ".3e+")
	tokeniseFail(t, ".3e-.")
	tokeniseFail(t, "0b34Longer")
	tokeniseFail(t, "0X_34Longer")
	tokeniseFail(t, "0x")
	tokeniseFail(t, "0b")
}

func TestTokeniser(t *testing.T) {

	tk := NewTokeniser("mytest", " not 'hello kitty''s friend' = Is null       ")

	expectToken := func(id LexTokenID, val string) {
		tok, err := tk.NextToken()
		if err != nil || tok.ID != id || tok.Val != val {
			t.Error("Unexpected token:", tok, err)
		}
	}

	expectToken(TokenNOT, "not")
	expectToken(TokenSTRING, "hello kitty's friend")
	expectToken(TokenEQUAL, "=")
	expectToken(TokenIS, "Is")
	expectToken(TokenNULL, "null")
	expectToken(TokenEOS, "")
	expectToken(TokenEOS, "")

	// Return tokens to the stream and read them again

	tk.ReturnTokens(3)

	expectToken(TokenIS, "Is")
	expectToken(TokenNULL, "null")
	expectToken(TokenEOS, "")
	expectToken(TokenEOS, "")

	// Test lexical error reporting

	tk = NewTokeniser("mytest", "a = 0X_33")

	if _, err := tk.NextToken(); err != nil {
		t.Error("Unexpected tokeniser result:", err)
		return
	}
	if _, err := tk.NextToken(); err != nil {
		t.Error("Unexpected tokeniser result:", err)
		return
	}

	_, err := tk.NextToken()
	if err == nil {
		t.Error("Lexical error expected")
		return
	}

	perr, ok := err.(*Error)
	if !ok || perr.Type != ErrLexicalError || perr.Detail != "0X_33" {
		t.Error("Unexpected tokeniser result:", err)
		return
	}

	if err.Error() != "Illegal selector in mytest: '0X_33': Lexical error (Line:1 Pos:5)" {
		t.Error("Unexpected error message:", err)
		return
	}

	// Test position information

	tk = NewTokeniser("mytest", "a =\n b")

	tok, _ := tk.NextToken()
	if tok.PosString() != "Line 1, Pos 1" {
		t.Error("Unexpected position:", tok.PosString())
		return
	}

	tk.NextToken()

	tok, _ = tk.NextToken()
	if tok.Val != "b" || tok.PosString() != "Line 2, Pos 2" {
		t.Error("Unexpected position:", tok, tok.PosString())
		return
	}
}
