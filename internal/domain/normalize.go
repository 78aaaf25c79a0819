package domain

import "strings"

// TextPtr returns nil for blank input so it is stored as NULL.
func TextPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// OptionalText drops blank strings, including the literal "undefined"
// some exporters emit for missing values.
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	if v := strings.TrimSpace(*s); v == "" || v == "undefined" {
		return nil
	}
	return s
}

type number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// OptionalNumber treats zero as unknown.
func OptionalNumber[T number](n *T) *T {
	if n == nil || *n == 0 {
		return nil
	}
	return n
}

func OptionalDate(d *Date) *Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}

func BoolDefaultFalse(b *bool) *bool {
	if b == nil {
		f := false
		return &f
	}
	return b
}

func Ptr[T any](v T) *T {
	return &v
}
