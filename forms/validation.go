package forms

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ValidationErrors maps a draft field to what is wrong with it.
// A draft with validation errors never reaches the store.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "is required")
	}
}

// optionalString turns an empty field into an absent value.
func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

// optionalInt parses an integer field within [min, max]; empty means absent, never zero.
func (v ValidationErrors) optionalInt(field, value string, min, max int) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		v.add(field, "must be a whole number")
		return nil
	}
	if n < min || n > max {
		v.add(field, "must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max))
		return nil
	}
	return &n
}

// optionalFloat parses a finite, non-negative decimal field; empty means absent, never zero.
func (v ValidationErrors) optionalFloat(field, value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		v.add(field, "must be a number")
		return nil
	}
	if f < 0 {
		v.add(field, "cannot be negative")
		return nil
	}
	return &f
}

func (v ValidationErrors) date(field, value string) {
	if value == "" {
		v.add(field, "is required")
		return
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		v.add(field, "must be a date (YYYY-MM-DD)")
	}
}

// clock accepts the HH:MM and HH:MM:SS values browsers send for time inputs.
func (v ValidationErrors) clock(field, value string) {
	if value == "" {
		v.add(field, "is required")
		return
	}
	if _, err := time.Parse("15:04", value); err == nil {
		return
	}
	if _, err := time.Parse("15:04:05", value); err != nil {
		v.add(field, "must be a time (HH:MM)")
	}
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatOptionalFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
