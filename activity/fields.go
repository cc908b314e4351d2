// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError reports an unusable activity parameter
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// fields holds the raw activity parameters keyed by name
type fields map[string]json.RawMessage

func parseFields(params json.RawMessage) (fields, error) {
	if len(bytes.TrimSpace(params)) == 0 {
		return fields{}, nil
	}

	var f fields
	if err := json.Unmarshal(params, &f); err != nil || f == nil {
		return nil, &ValidationError{Message: "activity parameters must be a JSON object"}
	}
	return f, nil
}

// present reports whether key holds something other than null
func (f fields) present(key string) bool {
	raw, ok := f[key]
	return ok && string(bytes.TrimSpace(raw)) != "null"
}

// str returns a string parameter, or def when it is absent or empty
func (f fields) str(key, def string) (string, error) {
	if !f.present(key) {
		return def, nil
	}

	var s string
	if err := json.Unmarshal(f[key], &s); err != nil {
		return "", &ValidationError{Field: key, Message: key + " must be a string"}
	}
	if s = strings.TrimSpace(s); s == "" {
		return def, nil
	}
	return s, nil
}

// number returns a required numeric parameter given as a JSON number or numeric string
func (f fields) number(key string) (float64, error) {
	if !f.present(key) {
		return 0, &ValidationError{Field: key, Message: key + " is required"}
	}

	v, err := ParseNumber(f[key])
	if err != nil {
		return 0, &ValidationError{Field: key, Message: key + " must be a number"}
	}
	return v, nil
}

// integer returns an optional whole-number parameter within [lo, hi], or def when absent
func (f fields) integer(key string, def, lo, hi int) (int, error) {
	if !f.present(key) {
		return def, nil
	}

	v, err := ParseNumber(f[key])
	if err != nil || v != math.Trunc(v) {
		return 0, &ValidationError{Field: key, Message: key + " must be a whole number"}
	}
	if v < float64(lo) || v > float64(hi) {
		return 0, &ValidationError{Field: key, Message: fmt.Sprintf("%s must be between %d and %d", key, lo, hi)}
	}
	return int(v), nil
}

// ParseNumber decodes a JSON number or a string holding one
func ParseNumber(raw json.RawMessage) (float64, error) {
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		text = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", text)
	}
	return v, nil
}
