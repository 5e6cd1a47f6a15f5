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
	"testing"

	"devt.de/krotik/selector/parser"
)

/*
compileSelector compiles a given selector expression.
*/
func compileSelector(src string) (CondRuntime, error) {

	ast, err := parser.ParseWithRuntime("test", src, NewSelectorRuntimeProvider("test"))
	if err != nil {
		return nil, err
	}

	if err := ast.Runtime.Validate(); err != nil {
		return nil, err
	}

	return ast.Runtime.(CondRuntime), nil
}

/*
checkSelectors evaluates a table of selector expressions against a given
environment and compares the result with the expected outcome.
*/
func checkSelectors(t *testing.T, env Env, table map[string]bool) {

	for src, expected := range table {
		rt, err := compileSelector(src)
		if err != nil {
			t.Error("Cannot compile selector", src, ":", err)
			continue
		}

		if res := rt.CondEvalBool(env) == BoolTrue; res != expected {
			t.Error("Unexpected evaluation result for:", src, "- got:", res,
				"expected:", expected)
		}
	}
}

func TestSimpleEval(t *testing.T) {

	env := NewMapEnv()
	env.Set("A", StringValue("Bye, bye cruel world"))
	env.Set("B", StringValue("hello kitty"))

	checkSelectors(t, env, map[string]bool{
		"":                              true,
		" ":                             true,
		"A is not null":                 true,
		"A is null":                     false,
		"A = C":                         false,
		"A <> C":                        false,
		"C is not null":                 false,
		"C is null":                     true,
		"A='Bye, bye cruel world'":      true,
		"A<>'Bye, bye cruel world'":     false,
		"A='hello kitty'":               false,
		"A<>'hello kitty'":              true,
		"A=B":                           false,
		"A<>B":                          true,
		"A='hello kitty' OR B='Bye, bye cruel world'":             false,
		"B='hello kitty' OR A='Bye, bye cruel world'":             true,
		"B='hello kitty' AnD A='Bye, bye cruel world'":            true,
		"B='hello kitty' AnD B='Bye, bye cruel world'":            false,
		"A is null or A='Bye, bye cruel world'":                   true,
		"Z is null OR A is not null and A<>'Bye, bye cruel world'": true,
		"(Z is null OR A is not null) and A<>'Bye, bye cruel world'": false,
		"NOT C is not null OR C is null":                          true,
		"Not A='' or B=z":                                         true,
		"Not A=17 or B=5.6":                                       true,
		"A<>17 and B=5.6e17":                                      false,
		"C=D":                                                     false,
		"13 is not null":                                          true,
		"'boo!' is null":                                          false,
	})
}

func TestLikeEval(t *testing.T) {

	env := NewMapEnv()
	env.Set("A", StringValue("Bye, bye cruel world"))

	checkSelectors(t, env, map[string]bool{
		"A LIKE '%cru_l%'":          true,
		"A LIKE 'Bye%'":             true,
		"A LIKE 'bye%'":             false,
		"A LIKE '%cruel'":           false,
		"A NOT LIKE 'z_%.%z_%z%' escape 'z'": true,
		"'_%%_hello.th_re%' LIKE 'z_%.%z_%z%' escape 'z'": true,
		`'{}[]<>,.!"$%^&*()_-+=?/|\' LIKE '{}[]<>,.!"$z%^&*()z_-+=?/|\' escape 'z'`: true,

		// A non-string subject gives an unknown result

		"42 LIKE '42'":           false,
		"(42 LIKE '42') IS NULL": true,
		"(C LIKE '42') IS NULL":  true,
	})
}

func TestNumericEval(t *testing.T) {

	env := NewMapEnv()
	env.Set("A", InexactValue(42.0))
	env.Set("B", ExactValue(39))

	checkSelectors(t, env, map[string]bool{
		"A>B":                        true,
		"A=42":                       true,
		"42=A":                       true,
		"B=39.0":                     true,
		"Not A=17 or B=5.6":          true,
		"A<>17 and B=5.6e17":         false,
		"3 BETWEEN -17 and 98.5":     true,
		"A BETWEEN B and 98.5":       true,
		"B NOT BETWEEN 35 AND 100":   false,
		"A BETWEEN B and 40":         false,
		"A BETWEEN C and 40":         false,
		"A BETWEEN 45 and C":         false,
		"(A BETWEEN 40 and C) IS NULL": true,
		"(A BETWEEN C and 45) IS NULL": true,
		"17/4=4":                     true,
		"A/0=0":                      false,
		"B/0=0":                      false,
		"(B/0) IS NULL":              true,
		"A*B+19<A*(B+19)":            true,
		"-A=0-A":                     true,
		"N*M+19 < N*(M+19)":          false,
	})

	env.Set("N", InexactValue(42.0))
	env.Set("M", ExactValue(39))

	checkSelectors(t, env, map[string]bool{
		"N*M+19 < N*(M+19)": true,
	})
}

func TestNumericLiterals(t *testing.T) {

	env := NewMapEnv()

	checkSelectors(t, env, map[string]bool{
		" 9223372036854775807>0":                   true,
		"-9223372036854775807<0":                   true,
		"0x8000_0000_0000_0001=-9223372036854775807": true,
		" 9223372036854775807L<>0":                 true,
		"-9223372036854775807L<>0":                 true,
		"-9223372036854775808<>0":                  true,
		"-9223372036854775808=0x8000_0000_0000_0000": true,
		"0x8000_0000_0000_0000<9223372036854775807":  true,
		" 0.4f>0.3d":                               true,
		" 1000_020.4f>0.3d":                        true,
		" 1000_020.4f>0x800p-3":                    true,
		" 0x1000_0000=0x1000_0000p0":               true,
		" 0xFF=255L":                               true,
		" 077L=0b111_111":                          true,
		" 077L=63":                                 true,
		" 017=15":                                  true,
	})

	// Too big literals are compile errors

	for _, src := range []string{
		" 9223372036854775808>0",
		"-9223372036854775809<0",
	} {
		_, err := compileSelector(src)

		rerr, ok := err.(*RuntimeError)
		if !ok || rerr.Type != ErrIntegerLiteral {
			t.Error("Literal error expected for:", src, "- got:", err)
		}
	}

	if _, err := compileSelector("1e400 > 0"); err == nil ||
		err.(*RuntimeError).Type != ErrFloatLiteral {
		t.Error("Literal error expected - got:", err)
		return
	}
}

func TestComparisonEval(t *testing.T) {

	env := NewMapEnv()

	checkSelectors(t, env, map[string]bool{
		"17 > 19.0":      false,
		"'hello' > 19.0": false,
		"'hello' < 19.0": false,
		"'hello' = 19.0": false,
		"'hello'>42 and 'hello'<42 and 'hello'=42 and 'hello'<>42": false,
		"20 >= 19.0 and 20 > 19":                                   true,
		"42 <= 42.0 and 37.0 >= 37":                                true,

		"(A IN ('hello', 'there', 1 , true, (1-17))) IS NULL": true,
		"(-16 IN ('hello', A, 'there', true)) IS NULL":        true,
		"(-16 NOT IN ('hello', 'there', A, true)) IS NULL":    true,
		"(-16 IN ('hello', 'there', true)) IS NOT NULL":       true,
		"-16 IN ('hello', 'there', true)":                     false,
		"(-16 NOT IN ('hello', 'there', true)) IS NULL":       true,
		"-16 NOT IN ('hello', 'there', true)":                 false,
		"(-16 NOT IN ('hello', 'there', A, 1 , true)) IS NULL": true,
		"'hello' IN ('hello', 'there', 1 , true, (1-17))":      true,
		"TRUE IN ('hello', 'there', 1 , true, (1-17))":         true,
		"-16 IN ('hello', 'there', 1 , true, (1-17))":          true,
		"-16 NOT IN ('hello', 'there', 1 , true, (1-17))":      false,
		"1 IN ('hello', 'there', 'polly')":                     false,
		"1 NOT IN ('hello', 'there', 'polly')":                 false,
		"(1 NOT IN ('hello', 'there', 'polly')) IS NULL":       true,
		"'hell' IN ('hello', 'there', 1 , true, (1-17))":       false,
		"('hell' IN ('hello', 'there', 1 , true, (1-17), A)) IS NULL":     true,
		"('hell' NOT IN ('hello', 'there', 1 , true, (1-17), A)) IS NULL": true,

		"'hello kitty' BETWEEN 30 and 40":     false,
		"'hello kitty' NOT BETWEEN 30 and 40": true,
		"14 BETWEEN 'aardvark' and 'zebra'":   false,
		"14 NOT BETWEEN 'aardvark' and 'zebra'": true,
		"TRUE BETWEEN 'aardvark' and 'zebra'":   false,
		"TRUE NOT BETWEEN 'aardvark' and 'zebra'": true,
		"(A BETWEEN 'aardvark' and 14) IS NULL":   true,
		"(A NOT BETWEEN 'aardvark' and 14) IS NULL": true,
		"(14 BETWEEN A and 17) IS NULL":             true,
		"(14 NOT BETWEEN A and 17) IS NULL":         true,
		"(14 BETWEEN 11 and A) IS NULL":             true,
		"(14 NOT BETWEEN 11 and A) IS NULL":         true,
		"14 NOT BETWEEN 11 and 9":                   true,
		"14 BETWEEN -11 and 54367":                  true,
	})
}

func TestNullEval(t *testing.T) {

	env := NewMapEnv()

	checkSelectors(t, env, map[string]bool{
		"P > 19.0 or (P is null)": true,
		"P is null or P=''":       true,
		"P=Q":                     false,
		"not P=Q":                 false,
		"not P=Q and not P=Q":     false,
		"P=Q or not P=Q":          false,
		"P > 19.0 or P <= 19.0":   false,
		"P > 19.0 or 17 <= 19.0":  true,
	})
}

func TestPropertyEnv(t *testing.T) {

	env := NewPropertyEnv(map[string]interface{}{
		"color": "red",
		"size":  15,
		"price": 7.5,
		"sale":  true,
	})

	checkSelectors(t, env, map[string]bool{
		"color = 'red'":               true,
		"size BETWEEN 10 AND 20":      true,
		"price * 2 = 15":              true,
		"sale AND size > 10":          true,
		"weight IS NULL":              true,
		"weight > 10":                 false,
	})
}

func TestInvalidRuntime(t *testing.T) {

	// Build a node which the provider does not know

	node := &parser.ASTNode{Name: "dummy", Token: &parser.LexToken{}}
	rtp := NewSelectorRuntimeProvider("test")
	node.Runtime = rtp.Runtime(node)

	if err := node.Runtime.Validate(); err == nil ||
		err.(*RuntimeError).Type != ErrInvalidConstruct {
		t.Error("Invalid construct error expected - got:", err)
		return
	}

	if _, err := node.Runtime.Eval(); err == nil {
		t.Error("Invalid construct error expected")
		return
	}

	if res := node.Runtime.(CondRuntime).CondEval(EmptyEnv); !res.IsUnknown() {
		t.Error("Unexpected result:", res)
		return
	}
}
