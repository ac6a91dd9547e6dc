package product

import (
	"strconv"
	"strings"
)

// Record is the raw Open Food Facts product object. Fields are crowd-sourced and may be
// missing, null or of an unexpected type; the accessors report all of those as absent.
type Record map[string]any

// String returns the field as text. Numbers are rendered without a trailing ".0".
func (r Record) String(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	switch v := r[key].(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", false
		}
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// FirstString returns the first present field among keys.
func (r Record) FirstString(keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := r.String(key); ok {
			return v, true
		}
	}
	return "", false
}

// StringOr is FirstString with a fallback.
func (r Record) StringOr(fallback string, keys ...string) string {
	if v, ok := r.FirstString(keys...); ok {
		return v
	}
	return fallback
}

// Strings returns a tag list. Non-string elements are skipped.
func (r Record) Strings(key string) []string {
	if r == nil {
		return nil
	}
	raw, ok := r[key].([]any)
	if !ok {
		if typed, ok := r[key].([]string); ok {
			return typed
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Map returns a nested object such as nutrient_levels, or an empty map.
func (r Record) Map(key string) map[string]any {
	if r != nil {
		if m, ok := r[key].(map[string]any); ok {
			return m
		}
	}
	return map[string]any{}
}
