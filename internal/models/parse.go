package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseIdentifier accepts only integer values: Go integer kinds or a
// json.Number holding an integer literal. Floats are rejected even when
// integral, and so are numeric strings.
func ParseIdentifier(field string, v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint:
		if uint64(x) <= math.MaxInt64 {
			return int64(x), nil
		}
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), nil
		}
	case json.Number:
		if n, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, invalid("new account", field, v, "must be an integer, got %s", describe(v))
}

// ParseAmount coerces v to a finite float64. Numeric strings are accepted
// after trimming surrounding space; booleans, NaN and infinities are not.
func ParseAmount(v any) (float64, error) {
	return coerceAmount("parse amount", v)
}

func coerceAmount(op string, v any) (float64, error) {
	var (
		f  float64
		ok = true
	)
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		var err error
		f, err = x.Float64()
		ok = err == nil
	case string:
		var err error
		f, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
		ok = err == nil
	default:
		ok = false
	}
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid(op, "amount", v, "must be numeric, got %s", describe(v))
	}
	return f, nil
}

// ParseDate returns v as a calendar date when it is a non-zero time.Time or
// a YYYY-MM-DD string; anything else yields today. It never fails.
func ParseDate(v any, today time.Time) time.Time {
	switch x := v.(type) {
	case time.Time:
		if !x.IsZero() {
			return truncateDay(x)
		}
	case *time.Time:
		if x != nil && !x.IsZero() {
			return truncateDay(*x)
		}
	case string:
		if t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(x), today.Location()); err == nil {
			return t
		}
	}
	return truncateDay(today)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case json.Number:
		return string(x)
	default:
		return fmt.Sprintf("%v (%T)", x, x)
	}
}
