// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package hostval

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/decimal256"

	"github.com/arrowarc/arrowarc/pqerr"
	"github.com/arrowarc/arrowarc/schema"
	"github.com/arrowarc/arrowarc/value"
)

// ToDecimal accepts strings (including scientific notation), shopspring
// big-decimals, and numeric host values; it parses to an (unscaled
// integer, scale) pair and rescales to the target schema scale with
// half-even rounding, then stores the unscaled integer in either a
// Decimal128 or Decimal256 Value depending on the declared precision.
func (c *Converter) ToDecimal(path string, hv any, n schema.Node) (value.Value, error) {
	d, err := toShopspringDecimal(path, hv)
	if err != nil {
		return value.Value{}, err
	}

	rescaled := d.RoundBank(n.Scale)
	unscaled := rescaled.Coefficient()
	if rescaled.Exponent() != -n.Scale {
		// RoundBank always leaves exactly n.Scale fractional digits
		// except when the coefficient is zero, where Coefficient() may
		// report exponent 0; normalize by rescaling the big.Int directly.
		unscaled = rescaleBigInt(unscaled, -rescaled.Exponent(), n.Scale)
	}

	if bitLen := unscaled.BitLen(); !fitsDecimalPrecision(unscaled, n.Precision) {
		return value.Value{}, pqerr.New(pqerr.Conversion, "to_value", path).WithValue(fmt.Sprintf("%v (%d bits)", unscaled, bitLen))
	}

	if n.DecimalPhysicalWidth() <= 128 {
		num := decimal128.FromBigInt(unscaled)
		return value.Decimal128(num, n.Scale), nil
	}
	num := decimal256.FromBigInt(unscaled)
	return value.Decimal256(num, n.Scale), nil
}

func toShopspringDecimal(path string, hv any) (decimal.Decimal, error) {
	switch v := hv.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, pqerr.Wrap(pqerr.Conversion, "to_value", path, err).WithValue(v)
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case *big.Int:
		return decimal.NewFromBigInt(v, 0), nil
	default:
		return decimal.Decimal{}, convErr(path, fmt.Sprint(hv))
	}
}

// rescaleBigInt shifts unscaled from fromScale to toScale fractional
// digits. RoundBank already produces the target scale except when the
// coefficient is zero, where shopspring reports a non-canonical exponent.
func rescaleBigInt(unscaled *big.Int, fromScale, toScale int32) *big.Int {
	diff := toScale - fromScale
	out := new(big.Int).Set(unscaled)
	if diff > 0 {
		factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(diff)), nil)
		out.Mul(out, factor)
	} else if diff < 0 {
		factor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-diff)), nil)
		out.Quo(out, factor)
	}
	return out
}

// fitsDecimalPrecision reports whether unscaled's magnitude has at most
// precision decimal digits.
func fitsDecimalPrecision(unscaled *big.Int, precision int32) bool {
	abs := new(big.Int).Abs(unscaled)
	maxVal := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precision)), nil)
	return abs.Cmp(maxVal) < 0
}

// decimalToHost reconstructs a shopspring decimal.Decimal from a Decimal128
// or Decimal256 Value, for the Value -> Host direction. The host-visible
// string form (via d.String()) reproduces the exact unscaled integer and
// scale the writer stored.
func decimalToHost(v value.Value) decimal.Decimal {
	return decimal.NewFromBigInt(v.BigIntUnscaled(), -v.Scale())
}
