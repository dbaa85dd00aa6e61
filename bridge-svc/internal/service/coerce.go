package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// toNumber coerces a loosely typed value to a finite float64, 0 otherwise.
func toNumber(v any) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case json.Number:
		return parseNumber(n.String())
	case string:
		return parseNumber(n)
	case []byte:
		return parseNumber(string(n))
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// toQty is toNumber with missing, zero or invalid quantities counted as 1.
func toQty(v any) float64 {
	if q := toNumber(v); q != 0 {
		return q
	}
	return 1
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case string:
		if id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return id
		}
	case []byte:
		if id, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64); err == nil {
			return id
		}
	}
	return int64(toNumber(v))
}

func nullableID(v any) *int64 {
	if v == nil {
		return nil
	}
	id := toInt64(v)
	return &id
}

func toText(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(s)
	}
}

// truthy follows the loose truthiness the UI expects for flags.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case []byte:
		return len(b) > 0
	default:
		return toNumber(v) != 0
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
