package format

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxDigits is the display width budget for the integer and fractional
	// digits of a plain decimal
	MaxDigits = 10

	// ExponentialThreshold is the magnitude at which integers switch to
	// exponential notation
	ExponentialThreshold = 1e10

	// MantissaDigits is the number of fractional digits kept in the
	// mantissa of exponential notation
	MantissaDigits = 4
)

// Number converts a numeric value into a bounded-width display string.
//
// Integers below 1e10 in magnitude are printed in full, larger integers use
// exponential notation with four mantissa digits. Non-integers keep at most
// MaxDigits digits in total, with the fractional part absorbing whatever the
// integer part leaves over. Trailing zeros are never printed.
func Number(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	if v == math.Trunc(v) {
		if math.Abs(v) >= ExponentialThreshold {
			return toExponential(v, MantissaDigits)
		}
		return Canonical(v)
	}

	s := Canonical(v)

	// Already exponential (only very small magnitudes reach here)
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		mantissa, _ := strconv.ParseFloat(s[:i], 64)
		return toFixed(mantissa, MantissaDigits) + s[i:]
	}

	integer := s
	if i := strings.IndexByte(s, '.'); i >= 0 {
		integer = s[:i]
	}

	// The integer part length includes a leading minus sign
	if len(integer) > MaxDigits {
		return toExponential(v, MantissaDigits)
	}

	decimals := max(0, MaxDigits-len(integer))
	rounded, _ := strconv.ParseFloat(toFixed(v, decimals), 64)
	return Canonical(rounded)
}

// Canonical returns the shortest round-trip string for v, switching to
// exponential notation outside [1e-6, 1e21) the way ECMAScript does.
// Negative zero prints as "0".
func Canonical(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	neg := v < 0
	if neg {
		v = -v
	}

	e := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.IndexByte(e, 'e')
	digits := strings.Replace(e[:i], ".", "", 1)
	exp, _ := strconv.Atoi(e[i+1:])

	k := len(digits)
	n := exp + 1

	var out string
	switch {
	case k <= n && n <= 21:
		out = digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		out = digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		out = "0." + strings.Repeat("0", -n) + digits
	default:
		out = digits[:1]
		if k > 1 {
			out += "." + digits[1:]
		}
		out += "e" + signedExponent(n-1)
	}

	if neg {
		return "-" + out
	}
	return out
}

// toFixed rounds v to exactly n fractional digits, halfway cases away from zero
func toFixed(v float64, n int) string {
	if isHalfway(v, n) {
		v = awayFromZero(v)
	}
	return strconv.FormatFloat(v, 'f', n, 64)
}

// toExponential renders v as d.dddde±x with f fractional mantissa digits,
// halfway cases away from zero
func toExponential(v float64, f int) string {
	if v != 0 && isHalfway(v, f-decimalExponent(v)) {
		v = awayFromZero(v)
	}

	s := strconv.FormatFloat(v, 'e', f, 64)
	i := strings.IndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	return s[:i] + "e" + signedExponent(exp)
}

// decimalExponent returns floor(log10(|v|)) for a non-zero finite v
func decimalExponent(v float64) int {
	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	return exp
}

// isHalfway reports whether |v| * 10^scale lies exactly between two integers.
// A rational in lowest terms has fractional part 1/2 iff its denominator is 2.
func isHalfway(v float64, scale int) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}

	r := new(big.Rat).SetFloat64(math.Abs(v))
	p := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs(scale))), nil))
	if scale >= 0 {
		r.Mul(r, p)
	} else {
		r.Quo(r, p)
	}

	return r.Denom().Cmp(big.NewInt(2)) == 0
}

func awayFromZero(v float64) float64 {
	return math.Nextafter(v, math.Copysign(math.Inf(1), v))
}

func signedExponent(exp int) string {
	if exp < 0 {
		return "-" + strconv.Itoa(-exp)
	}
	return "+" + strconv.Itoa(exp)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// decimalLiteral matches plain decimal numbers, including a trailing point
// ("12.") or a missing integer part (".5"). Inf, NaN and hex forms are not
// numbers here.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// String formats s when it parses as a finite number and reports whether it
// did. Anything else is returned unchanged.
func String(s string) (string, bool) {
	t := strings.TrimSpace(s)
	if !decimalLiteral.MatchString(t) {
		return s, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return s, false
	}
	return Number(v), true
}
