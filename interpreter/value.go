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
	"fmt"
)

/*
ValueType is the type tag of a Value.
*/
type ValueType int

/*
Available value types. The order determines the type identity check -
values are only directly comparable if their tags match after numeric
promotion.
*/
const (
	TypeUnknown ValueType = iota // Unknown / SQL NULL
	TypeBool                     // Boolean value
	TypeExact                    // 64-bit signed integer value
	TypeInexact                  // 64-bit IEEE-754 float value
	TypeString                   // String value
)

/*
Value is a tagged union over the types which can appear in a selector
expression. The zero value is the unknown value.
*/
type Value struct {
	vtype ValueType

	b bool
	i int64
	f float64
	s string
}

/*
UnknownValue returns the unknown value.
*/
func UnknownValue() Value {
	return Value{}
}

/*
BoolValue returns a boolean value.
*/
func BoolValue(b bool) Value {
	return Value{vtype: TypeBool, b: b}
}

/*
ExactValue returns an exact (integer) numeric value.
*/
func ExactValue(i int64) Value {
	return Value{vtype: TypeExact, i: i}
}

/*
InexactValue returns an inexact (floating point) numeric value.
*/
func InexactValue(f float64) Value {
	return Value{vtype: TypeInexact, f: f}
}

/*
StringValue returns a string value.
*/
func StringValue(s string) Value {
	return Value{vtype: TypeString, s: s}
}

/*
NativeValue converts a given native Go value into a Value. Unsupported
types convert to the unknown value.
*/
func NativeValue(v interface{}) Value {
	switch v := v.(type) {
	case nil:
		return Value{}
	case bool:
		return BoolValue(v)
	case int:
		return ExactValue(int64(v))
	case int8:
		return ExactValue(int64(v))
	case int16:
		return ExactValue(int64(v))
	case int32:
		return ExactValue(int64(v))
	case int64:
		return ExactValue(v)
	case uint:
		return ExactValue(int64(v))
	case uint8:
		return ExactValue(int64(v))
	case uint16:
		return ExactValue(int64(v))
	case uint32:
		return ExactValue(int64(v))
	case float32:
		return InexactValue(float64(v))
	case float64:
		return InexactValue(v)
	case string:
		return StringValue(v)
	}

	return Value{}
}

/*
Type returns the type tag of this value.
*/
func (v Value) Type() ValueType {
	return v.vtype
}

/*
IsUnknown checks if this value is the unknown value.
*/
func (v Value) IsUnknown() bool {
	return v.vtype == TypeUnknown
}

/*
Bool returns the boolean payload of this value.
*/
func (v Value) Bool() bool {
	return v.b
}

/*
Exact returns the integer payload of this value.
*/
func (v Value) Exact() int64 {
	return v.i
}

/*
Inexact returns the float payload of this value.
*/
func (v Value) Inexact() float64 {
	return v.f
}

/*
Str returns the string payload of this value.
*/
func (v Value) Str() string {
	return v.s
}

/*
Native returns this value as a native Go value. The unknown value converts
to nil.
*/
func (v Value) Native() interface{} {
	switch v.vtype {
	case TypeBool:
		return v.b
	case TypeExact:
		return v.i
	case TypeInexact:
		return v.f
	case TypeString:
		return v.s
	}
	return nil
}

/*
String returns a string representation of this value.
*/
func (v Value) String() string {
	switch v.vtype {
	case TypeBool:
		return fmt.Sprintf("BOOL:%v", v.b)
	case TypeExact:
		return fmt.Sprintf("EXACT:%v", v.i)
	case TypeInexact:
		return fmt.Sprintf("APPROX:%v", v.f)
	case TypeString:
		return fmt.Sprintf("STRING:'%s'", v.s)
	}
	return "UNKNOWN"
}

/*
BoolOrNone is the three-valued truth type of boolean subexpressions.
*/
type BoolOrNone int

/*
Truth values of BoolOrNone.
*/
const (
	BoolFalse BoolOrNone = iota
	BoolTrue
	BoolUnknown
)

/*
String returns a string representation of this truth value.
*/
func (bn BoolOrNone) String() string {
	switch bn {
	case BoolFalse:
		return "false"
	case BoolTrue:
		return "true"
	}
	return "unknown"
}

/*
boolToBON converts a native bool into a BoolOrNone.
*/
func boolToBON(b bool) BoolOrNone {
	if b {
		return BoolTrue
	}
	return BoolFalse
}

/*
Value converts this truth value into a Value. The unknown truth value
converts to the unknown value.
*/
func (bn BoolOrNone) Value() Value {
	switch bn {
	case BoolFalse:
		return BoolValue(false)
	case BoolTrue:
		return BoolValue(true)
	}
	return Value{}
}

/*
ValueToBool converts a given value into a BoolOrNone. Values other than
boolean values convert to the unknown truth value.
*/
func ValueToBool(v Value) BoolOrNone {
	if v.vtype == TypeBool {
		return boolToBON(v.b)
	}
	return BoolUnknown
}

// Value algebra
// =============

func numeric(v Value) bool {
	return v.vtype == TypeExact || v.vtype == TypeInexact
}

func sameType(v1 Value, v2 Value) bool {
	return v1.vtype == v2.vtype
}

/*
promoteNumeric promotes two numeric values to a common numeric type. If one
value is exact and the other inexact then the exact value is promoted to an
inexact value. The returned flag indicates if both values are numeric.
*/
func promoteNumeric(v1 Value, v2 Value) (Value, Value, bool) {

	if !numeric(v1) || !numeric(v2) {
		return v1, v2, false
	}

	if !sameType(v1, v2) {
		if v1.vtype == TypeExact {
			v1 = InexactValue(float64(v1.i))
		} else {
			v2 = InexactValue(float64(v2.i))
		}
	}

	return v1, v2, true
}

/*
Equals compares two values for equality. The result is unknown if either
value is unknown and false if the values are of different types after
numeric promotion.
*/
func Equals(v1 Value, v2 Value) BoolOrNone {

	if v1.IsUnknown() || v2.IsUnknown() {
		return BoolUnknown
	}

	v1, v2, _ = promoteNumeric(v1, v2)

	if !sameType(v1, v2) {
		return BoolFalse
	}

	switch v1.vtype {
	case TypeBool:
		return boolToBON(v1.b == v2.b)
	case TypeExact:
		return boolToBON(v1.i == v2.i)
	case TypeInexact:
		return boolToBON(v1.f == v2.f)
	}

	return boolToBON(v1.s == v2.s)
}

/*
NotEquals compares two values for inequality. Values of different types are
never unequal - the result in this case is false not true.
*/
func NotEquals(v1 Value, v2 Value) BoolOrNone {

	if v1.IsUnknown() || v2.IsUnknown() {
		return BoolUnknown
	}

	v1, v2, _ = promoteNumeric(v1, v2)

	if !sameType(v1, v2) {
		return BoolFalse
	}

	switch v1.vtype {
	case TypeBool:
		return boolToBON(v1.b != v2.b)
	case TypeExact:
		return boolToBON(v1.i != v2.i)
	case TypeInexact:
		return boolToBON(v1.f != v2.f)
	}

	return boolToBON(v1.s != v2.s)
}

/*
Less compares two values. Ordering is only defined for numeric values - the
result for values which cannot be promoted to a common numeric type is false.
*/
func Less(v1 Value, v2 Value) BoolOrNone {

	if v1.IsUnknown() || v2.IsUnknown() {
		return BoolUnknown
	}

	v1, v2, ok := promoteNumeric(v1, v2)
	if !ok {
		return BoolFalse
	}

	if v1.vtype == TypeExact {
		return boolToBON(v1.i < v2.i)
	}
	return boolToBON(v1.f < v2.f)
}

/*
Greater compares two values. See Less.
*/
func Greater(v1 Value, v2 Value) BoolOrNone {

	if v1.IsUnknown() || v2.IsUnknown() {
		return BoolUnknown
	}

	v1, v2, ok := promoteNumeric(v1, v2)
	if !ok {
		return BoolFalse
	}

	if v1.vtype == TypeExact {
		return boolToBON(v1.i > v2.i)
	}
	return boolToBON(v1.f > v2.f)
}

/*
LessEq compares two values. See Less.
*/
func LessEq(v1 Value, v2 Value) BoolOrNone {

	if v1.IsUnknown() || v2.IsUnknown() {
		return BoolUnknown
	}

	v1, v2, ok := promoteNumeric(v1, v2)
	if !ok {
		return BoolFalse
	}

	if v1.vtype == TypeExact {
		return boolToBON(v1.i <= v2.i)
	}
	return boolToBON(v1.f <= v2.f)
}

/*
GreaterEq compares two values. See Less.
*/
func GreaterEq(v1 Value, v2 Value) BoolOrNone {

	if v1.IsUnknown() || v2.IsUnknown() {
		return BoolUnknown
	}

	v1, v2, ok := promoteNumeric(v1, v2)
	if !ok {
		return BoolFalse
	}

	if v1.vtype == TypeExact {
		return boolToBON(v1.i >= v2.i)
	}
	return boolToBON(v1.f >= v2.f)
}

/*
Add adds two values. The result is unknown if the values cannot be promoted
to a common numeric type.
*/
func Add(v1 Value, v2 Value) Value {

	v1, v2, ok := promoteNumeric(v1, v2)
	if !ok {
		return Value{}
	}

	if v1.vtype == TypeExact {
		return ExactValue(v1.i + v2.i)
	}
	return InexactValue(v1.f + v2.f)
}

/*
Sub subtracts two values. See Add.
*/
func Sub(v1 Value, v2 Value) Value {

	v1, v2, ok := promoteNumeric(v1, v2)
	if !ok {
		return Value{}
	}

	if v1.vtype == TypeExact {
		return ExactValue(v1.i - v2.i)
	}
	return InexactValue(v1.f - v2.f)
}

/*
Mult multiplies two values. See Add.
*/
func Mult(v1 Value, v2 Value) Value {

	v1, v2, ok := promoteNumeric(v1, v2)
	if !ok {
		return Value{}
	}

	if v1.vtype == TypeExact {
		return ExactValue(v1.i * v2.i)
	}
	return InexactValue(v1.f * v2.f)
}

/*
Div divides two values. Integer division truncates towards zero, integer
division by zero yields the unknown value. Float division follows IEEE-754.
*/
func Div(v1 Value, v2 Value) Value {

	v1, v2, ok := promoteNumeric(v1, v2)
	if !ok {
		return Value{}
	}

	if v1.vtype == TypeExact {
		if v2.i == 0 {
			return Value{}
		}
		return ExactValue(v1.i / v2.i)
	}

	return InexactValue(v1.f / v2.f)
}

/*
Neg negates a numeric value. The result for non-numeric values is unknown.
*/
func Neg(v Value) Value {
	switch v.vtype {
	case TypeExact:
		return ExactValue(-v.i)
	case TypeInexact:
		return InexactValue(-v.f)
	}
	return Value{}
}

/*
Not negates a boolean value. The result for non-boolean values is the
unknown truth value.
*/
func Not(v Value) BoolOrNone {
	if v.vtype == TypeBool {
		return boolToBON(!v.b)
	}
	return BoolUnknown
}
