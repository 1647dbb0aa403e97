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
package rewrite

import (
	"math"
	"math/big"

	"github.com/consensys/go-algebra/pkg/ast"
)

// Bounds the magnitude of exponents for which powers are computed exactly.
const maxExactExponent = 1024

// Bounds the size (in bits) of exactly computed powers.
const maxExactBits = 1 << 16

type exactFn func(args []*big.Rat) (*big.Rat, bool)

type floatFn func(args []float64) (float64, bool)

// Operations supported during constant folding, keyed by name.  The exact
// implementation (if any) is tried first, falling back on floating point.
var operations = map[string]struct {
	arity int // -1 for variadic
	exact exactFn
	float floatFn
}{
	"add":        {-1, exactAdd, floatAdd},
	"multiply":   {-1, exactMultiply, floatMultiply},
	"subtract":   {2, exactSubtract, binary(func(x, y float64) float64 { return x - y })},
	"divide":     {2, exactDivide, binary(func(x, y float64) float64 { return x / y })},
	"mod":        {2, exactMod, binary(floatMod)},
	"pow":        {2, exactPow, binary(math.Pow)},
	"unaryMinus": {1, exactNeg, unary(func(x float64) float64 { return -x })},
	"unaryPlus":  {1, exactIdentity, unary(func(x float64) float64 { return x })},
	"abs":        {1, exactAbs, unary(math.Abs)},
	"floor":      {1, exactFloor, unary(math.Floor)},
	"ceil":       {1, exactCeil, unary(math.Ceil)},
	"round":      {1, exactRound, unary(math.Round)},
	"sqrt":       {1, exactSqrt, unary(math.Sqrt)},
	"exp":        {1, nil, unary(math.Exp)},
	"log":        {1, nil, unary(math.Log)},
	"sin":        {1, nil, unary(math.Sin)},
	"cos":        {1, nil, unary(math.Cos)},
	"tan":        {1, nil, unary(math.Tan)},
}

// Evaluate a named operation over some numeric values.  When every argument
// is a rational, the result is computed exactly where possible.  Otherwise,
// floating point arithmetic is used.  This fails for unknown operations,
// non-numeric arguments, the wrong number of arguments, or results which are
// not finite (e.g. division by zero).
func evaluate(fn string, args []ast.Value) (ast.Value, bool) {
	op, ok := operations[fn]
	//
	if !ok || len(args) == 0 || (op.arity >= 0 && op.arity != len(args)) {
		return nil, false
	}
	//
	if op.exact != nil {
		if rats, ok := allRationals(args); ok {
			if r, ok := op.exact(rats); ok {
				return ast.NewRational(r), true
			}
		}
	}
	//
	floats := make([]float64, len(args))
	//
	for i, arg := range args {
		if floats[i], ok = ast.ToFloat(arg); !ok {
			return nil, false
		}
	}
	//
	if r, ok := op.float(floats); ok && !math.IsNaN(r) && !math.IsInf(r, 0) {
		return ast.Float(r), true
	}
	//
	return nil, false
}

func allRationals(args []ast.Value) ([]*big.Rat, bool) {
	rats := make([]*big.Rat, len(args))
	//
	for i, arg := range args {
		r, ok := arg.(*ast.Rational)
		if !ok {
			return nil, false
		}
		//
		rats[i] = r.Rat()
	}
	//
	return rats, true
}

// ===================================================================
// Exact
// ===================================================================

func exactAdd(args []*big.Rat) (*big.Rat, bool) {
	sum := new(big.Rat)
	//
	for _, arg := range args {
		sum.Add(sum, arg)
	}
	//
	return sum, true
}

func exactMultiply(args []*big.Rat) (*big.Rat, bool) {
	product := big.NewRat(1, 1)
	//
	for _, arg := range args {
		product.Mul(product, arg)
	}
	//
	return product, true
}

func exactSubtract(args []*big.Rat) (*big.Rat, bool) {
	return new(big.Rat).Sub(args[0], args[1]), true
}

func exactDivide(args []*big.Rat) (*big.Rat, bool) {
	if args[1].Sign() == 0 {
		return nil, false
	}
	//
	return new(big.Rat).Quo(args[0], args[1]), true
}

// Modulus whose result has the sign of the divisor, i.e. x - y * floor(x / y).
func exactMod(args []*big.Rat) (*big.Rat, bool) {
	x, y := args[0], args[1]
	//
	if y.Sign() == 0 {
		return nil, false
	}
	//
	q := new(big.Rat).Quo(x, y)
	q.SetInt(floor(q))
	//
	return q.Sub(x, q.Mul(q, y)), true
}

// Exponentiation by an integer exponent of bounded size.  Anything else is
// left to floating point.
func exactPow(args []*big.Rat) (*big.Rat, bool) {
	base, exp := args[0], args[1]
	//
	if !exp.IsInt() || !exp.Num().IsInt64() {
		return nil, false
	}
	//
	e := exp.Num().Int64()
	bits := int64(base.Num().BitLen() + base.Denom().BitLen())
	//
	if e < -maxExactExponent || e > maxExactExponent || bits*abs64(e) > maxExactBits {
		return nil, false
	} else if e < 0 && base.Sign() == 0 {
		return nil, false
	}
	//
	k := big.NewInt(abs64(e))
	num := new(big.Int).Exp(base.Num(), k, nil)
	den := new(big.Int).Exp(base.Denom(), k, nil)
	//
	if e < 0 {
		num, den = den, num
	}
	//
	return new(big.Rat).SetFrac(num, den), true
}

func exactNeg(args []*big.Rat) (*big.Rat, bool) {
	return new(big.Rat).Neg(args[0]), true
}

func exactIdentity(args []*big.Rat) (*big.Rat, bool) {
	return args[0], true
}

func exactAbs(args []*big.Rat) (*big.Rat, bool) {
	return new(big.Rat).Abs(args[0]), true
}

func exactFloor(args []*big.Rat) (*big.Rat, bool) {
	return new(big.Rat).SetInt(floor(args[0])), true
}

func exactCeil(args []*big.Rat) (*big.Rat, bool) {
	f := floor(args[0])
	//
	if !args[0].IsInt() {
		f.Add(f, big.NewInt(1))
	}
	//
	return new(big.Rat).SetInt(f), true
}

// Round half away from zero.
func exactRound(args []*big.Rat) (*big.Rat, bool) {
	var (
		x    = new(big.Rat).Abs(args[0])
		half = big.NewRat(1, 2)
		r    = new(big.Rat).SetInt(floor(x.Add(x, half)))
	)
	//
	if args[0].Sign() < 0 {
		r.Neg(r)
	}
	//
	return r, true
}

// Square roots are exact only for perfect squares.
func exactSqrt(args []*big.Rat) (*big.Rat, bool) {
	x := args[0]
	//
	if x.Sign() < 0 {
		return nil, false
	}
	//
	num := new(big.Int).Sqrt(x.Num())
	den := new(big.Int).Sqrt(x.Denom())
	r := new(big.Rat).SetFrac(num, den)
	//
	if new(big.Rat).Mul(r, r).Cmp(x) != 0 {
		return nil, false
	}
	//
	return r, true
}

// Largest integer not greater than a given rational.  Since denominators are
// always positive, Euclidean division rounds in the right direction.
func floor(x *big.Rat) *big.Int {
	return new(big.Int).Div(x.Num(), x.Denom())
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	//
	return x
}

// ===================================================================
// Floating Point
// ===================================================================

func floatAdd(args []float64) (float64, bool) {
	sum := 0.0
	//
	for _, arg := range args {
		sum += arg
	}
	//
	return sum, true
}

func floatMultiply(args []float64) (float64, bool) {
	product := 1.0
	//
	for _, arg := range args {
		product *= arg
	}
	//
	return product, true
}

func floatMod(x, y float64) float64 {
	if y == 0 {
		return math.NaN()
	}
	//
	return x - y*math.Floor(x/y)
}

func unary(fn func(float64) float64) floatFn {
	return func(args []float64) (float64, bool) {
		return fn(args[0]), true
	}
}

func binary(fn func(float64, float64) float64) floatFn {
	return func(args []float64) (float64, bool) {
		return fn(args[0], args[1]), true
	}
}
