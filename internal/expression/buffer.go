// Package expression holds the calculator's in-progress input.
//
// The buffer is a single text value that is never empty. It is opaque to the
// client: operators are stored as the display glyphs (× ÷ + -) and the text is
// only interpreted by the remote evaluator. Sign toggling and percent operate
// on the trailing numeric token, located with an end-anchored pattern.
package expression

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/muurk/tapcalc/internal/format"
)

const (
	// Initial is the value of a fresh or cleared buffer
	Initial = "0"

	// ErrorText is written to the buffer when an evaluation fails
	ErrorText = "Error"
)

// Operator glyphs as shown on the keypad
const (
	Add      = "+"
	Subtract = "-"
	Multiply = "×"
	Divide   = "÷"
)

// trailingNumber matches an optionally signed decimal at the end of the text.
// Greedy on digits so "12+34" yields "34" and never spans an operator.
var trailingNumber = regexp.MustCompile(`-?\d+\.?\d*$`)

// canonicalOperators translates display glyphs to the evaluator's symbols
var canonicalOperators = strings.NewReplacer(Multiply, "*", Divide, "/")

// Buffer is the mutable expression text
type Buffer struct {
	value string
}

// NewBuffer returns a buffer holding Initial
func NewBuffer() *Buffer {
	return &Buffer{value: Initial}
}

// Value returns the current text
func (b *Buffer) Value() string {
	return b.value
}

// Len returns the length of the text in characters
func (b *Buffer) Len() int {
	return utf8.RuneCountInString(b.value)
}

// IsInitial reports whether the buffer holds exactly Initial
func (b *Buffer) IsInitial() bool {
	return b.value == Initial
}

// Set replaces the text wholesale. An empty value resets to Initial.
func (b *Buffer) Set(value string) string {
	if value == "" {
		value = Initial
	}
	b.value = value
	return b.value
}

// Append adds a token. A buffer holding exactly Initial is replaced instead.
// The second result reports whether the token was concatenated.
func (b *Buffer) Append(token string) (string, bool) {
	if b.value == Initial {
		return b.Set(token), false
	}
	b.value += token
	return b.value, true
}

// Clear resets the buffer to Initial
func (b *Buffer) Clear() string {
	b.value = Initial
	return b.value
}

// Backspace removes the last character. A single character becomes Initial.
func (b *Buffer) Backspace() string {
	if utf8.RuneCountInString(b.value) <= 1 {
		return b.Clear()
	}
	_, size := utf8.DecodeLastRuneInString(b.value)
	b.value = b.value[:len(b.value)-size]
	return b.value
}

// ToggleSign flips the sign of the trailing number. Earlier numbers and
// operators are untouched, and a buffer holding Initial is left alone.
func (b *Buffer) ToggleSign() string {
	if b.value == Initial {
		return b.value
	}

	loc := trailingNumber.FindStringIndex(b.value)
	if loc == nil {
		return b.value
	}

	token := b.value[loc[0]:]
	if strings.HasPrefix(token, "-") {
		token = token[1:]
	} else {
		token = "-" + token
	}

	b.value = b.value[:loc[0]] + token
	return b.value
}

// Percent replaces the trailing number with its value divided by 100
func (b *Buffer) Percent() string {
	token, value, ok := TrailingNumber(b.value)
	if !ok {
		return b.value
	}

	b.value = b.value[:len(b.value)-len(token)] + format.Number(value/100)
	return b.value
}

// TrailingNumber locates the trailing numeric token of text and parses it
func TrailingNumber(text string) (string, float64, bool) {
	token := trailingNumber.FindString(text)
	if token == "" {
		return "", 0, false
	}

	// A dangling decimal point ("12.") is valid input; ParseFloat rejects it
	value, err := strconv.ParseFloat(strings.TrimSuffix(token, "."), 64)
	if err != nil {
		return "", 0, false
	}
	return token, value, true
}

// Canonical translates display operator glyphs into the symbols the
// evaluator expects. Everything else passes through unchanged.
func Canonical(text string) string {
	return canonicalOperators.Replace(text)
}
