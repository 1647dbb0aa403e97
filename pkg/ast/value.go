// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package ast

import (
	"math"
	"math/big"
	"strconv"
)

// Value represents the value held by a constant node.
type Value interface {
	// String returns a literal representation of this value.
	String() string
	// marker method restricting implementations to this package.
	value()
}

// Rational is an exact (arbitrary precision) rational number.
type Rational struct {
	rat big.Rat
}

// Float is an inexact floating point number.
type Float float64

// Boolean is a truth value.
type Boolean bool

// String is a string literal.
type String string

func (*Rational) value() {}
func (Float) value()     {}
func (Boolean) value()   {}
func (String) value()    {}

// NewRational constructs a rational value from a given big rational.  The
// given rational is copied.
func NewRational(r *big.Rat) *Rational {
	var v Rational
	//
	v.rat.Set(r)
	//
	return &v
}

// Rat returns a copy of the underlying rational number.
func (v *Rational) Rat() *big.Rat {
	return new(big.Rat).Set(&v.rat)
}

// Sign returns -1, 0 or 1 depending on whether this value is negative, zero or
// positive.
func (v *Rational) Sign() int {
	return v.rat.Sign()
}

// IsInt checks whether this rational is an integer.
func (v *Rational) IsInt() bool {
	return v.rat.IsInt()
}

// Float64 returns the nearest floating point value to this rational.
func (v *Rational) Float64() float64 {
	f, _ := v.rat.Float64()
	return f
}

func (v *Rational) String() string {
	if v.rat.IsInt() {
		return v.rat.Num().String()
	} else if digits, ok := terminatingDigits(&v.rat); ok {
		return v.rat.FloatString(digits)
	}
	// Non-terminating decimal expansion
	return Float(v.Float64()).String()
}

func (v Float) String() string {
	f := float64(v)
	//
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	//
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (v Boolean) String() string {
	return strconv.FormatBool(bool(v))
}

func (v String) String() string {
	return strconv.Quote(string(v))
}

// IsNumber checks whether a value is numeric (i.e. rational or floating point).
func IsNumber(v Value) bool {
	switch v.(type) {
	case *Rational, Float:
		return true
	}
	//
	return false
}

// ToRat converts a numeric value into an exact rational, or returns false if
// this is not possible (e.g. for NaN or non-numeric values).
func ToRat(v Value) (*big.Rat, bool) {
	switch v := v.(type) {
	case *Rational:
		return v.Rat(), true
	case Float:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, false
		}
		//
		return new(big.Rat).SetFloat64(float64(v)), true
	}
	//
	return nil, false
}

// ToFloat converts a numeric value into a floating point number, or returns
// false for non-numeric values.
func ToFloat(v Value) (float64, bool) {
	switch v := v.(type) {
	case *Rational:
		return v.Float64(), true
	case Float:
		return float64(v), true
	}
	//
	return 0, false
}

// ValueEqual checks whether two values are equal.  Numeric values are compared
// by their numeric value, regardless of their representation.  Other values
// must be of the same kind.
func ValueEqual(lhs Value, rhs Value) bool {
	if IsNumber(lhs) && IsNumber(rhs) {
		l, lok := ToRat(lhs)
		r, rok := ToRat(rhs)
		//
		if lok && rok {
			return l.Cmp(r) == 0
		}
		// NaN or infinity involved
		lf, _ := ToFloat(lhs)
		rf, _ := ToFloat(rhs)
		//
		return lf == rf
	}
	//
	switch l := lhs.(type) {
	case Boolean:
		r, ok := rhs.(Boolean)
		return ok && l == r
	case String:
		r, ok := rhs.(String)
		return ok && l == r
	}
	//
	return false
}

// IsNegative checks whether a value is a negative number.
func IsNegative(v Value) bool {
	switch v := v.(type) {
	case *Rational:
		return v.Sign() < 0
	case Float:
		return v < 0
	}
	//
	return false
}

// Determine the number of decimal digits needed to represent a rational
// exactly, provided its denominator has no prime factors other than 2 and 5.
func terminatingDigits(r *big.Rat) (int, bool) {
	var (
		d     = new(big.Int).Set(r.Denom())
		two   = big.NewInt(2)
		five  = big.NewInt(5)
		rem   = new(big.Int)
		twos  = 0
		fives = 0
	)
	//
	for rem.Mod(d, two).Sign() == 0 {
		d.Quo(d, two)
		twos++
	}
	//
	for rem.Mod(d, five).Sign() == 0 {
		d.Quo(d, five)
		fives++
	}
	//
	return max(twos, fives), d.IsInt64() && d.Int64() == 1
}
