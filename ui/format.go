package ui

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatCount renders n with thousands separators, e.g. 1,234,567.
func FormatCount(n uint64) string {
	if n > math.MaxInt64 {
		return humanize.BigComma(new(big.Int).SetUint64(n))
	}
	return humanize.Comma(int64(n))
}

// Population magnitudes read as words; SI prefixes beyond these stay symbolic.
var magnitudeWords = map[string]string{
	"k": "thousand",
	"M": "million",
	"G": "billion",
	"T": "trillion",
}

// Humanize renders a population compactly, e.g. 10 billion.
func Humanize(n float64) string {
	switch {
	case math.IsNaN(n):
		return "n/a"
	case math.IsInf(n, 1):
		return "inf"
	case math.Abs(n) < 1000:
		return humanize.FtoaWithDigits(math.Round(n), 0)
	}
	value, prefix := humanize.ComputeSI(n)
	if word, ok := magnitudeWords[prefix]; ok {
		prefix = word
	}
	return humanize.FtoaWithDigits(value, 1) + " " + prefix
}

// FormatYear renders a simulated year.
func FormatYear(y int) string {
	return "year " + strconv.Itoa(y)
}

// FormatRatio renders a value with two decimals, or n/a for NaN.
func FormatRatio(v float64) string {
	return FormatFixed(v, 2)
}

// FormatFixed renders v with prec decimals, or n/a for NaN.
func FormatFixed(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, v)
}
