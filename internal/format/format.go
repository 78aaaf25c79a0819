// Package format renders catalog values for display, in Indonesian.
package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Empty is shown for every value that is not known.
const Empty = "-"

var printer = message.NewPrinter(language.Indonesian)

// Thousands groups n with the id-ID separator: 621000 -> "621.000".
func Thousands[T ~int | ~int64](n T) string {
	return printer.Sprintf("%d", int64(n))
}

// Rupiah formats a whole-rupiah amount: 5000000 -> "Rp 5.000.000".
func Rupiah(n int64) string {
	return "Rp " + Thousands(n)
}

// RupiahOrEmpty treats nil and zero as unknown.
func RupiahOrEmpty(n *int64) string {
	if n == nil || *n == 0 {
		return Empty
	}
	return Rupiah(*n)
}

// ThousandsOrEmpty treats nil and zero as unknown.
func ThousandsOrEmpty(n *int) string {
	if n == nil || *n == 0 {
		return Empty
	}
	return Thousands(*n)
}

func Text(s *string) string {
	if s == nil || *s == "" {
		return Empty
	}
	return *s
}

func Bool(b *bool) string {
	switch {
	case b == nil:
		return Empty
	case *b:
		return "Ya"
	default:
		return "Tidak"
	}
}

// Number renders n the way a browser stringifies it: integers without a
// fractional part, floats in their shortest form.
func Number[T ~int | ~int64 | ~float64](n T) string {
	switch v := any(n).(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strconv.FormatInt(int64(n), 10)
	}
}

// WithUnit renders "<value> <unit>". Zero is a value here, only nil is empty.
func WithUnit[T ~int | ~int64 | ~float64](n *T, unit string) string {
	if n == nil {
		return Empty
	}
	return Number(*n) + " " + unit
}

// Fixed1 formats x with one decimal using the rounding of JavaScript's
// Number.prototype.toFixed(1): the exact binary value of x is scaled and a
// tie goes to the larger magnitude.
func Fixed1(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	neg := x < 0
	if neg {
		x = -x
	}
	scaled := new(big.Float).SetPrec(256).SetFloat64(x)
	scaled.Mul(scaled, big.NewFloat(10))

	n, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	digits := n.String()
	if len(digits) < 2 {
		digits = "0" + digits
	}
	out := digits[:len(digits)-1] + "." + digits[len(digits)-1:]
	if neg {
		out = "-" + out
	}
	return out
}

// RatingLabel is the comparison table rating cell.
func RatingLabel(avg float64) string {
	if avg == 0 {
		return Empty
	}
	return "⭐ " + Fixed1(avg)
}

// Stars renders a 1..5 rating as filled and hollow stars.
func Stars(rating int) string {
	rating = max(0, min(5, rating))
	return strings.Repeat("⭐", rating) + strings.Repeat("☆", 5-rating)
}

var monthsID = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// LongDate formats t like id-ID long dates: "5 Oktober 2023".
func LongDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + " " + monthsID[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// RelativeDate describes how long ago t was, falling back to LongDate after 30 days.
func RelativeDate(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff / (24 * time.Hour))
	switch {
	case days == 0:
		return "Hari ini"
	case days == 1:
		return "Kemarin"
	case days < 7:
		return strconv.Itoa(days) + " hari lalu"
	case days < 30:
		return strconv.Itoa(days/7) + " minggu lalu"
	default:
		return LongDate(t)
	}
}
