package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var firstIntegerPattern = regexp.MustCompile(`\d+`)

// StripCodeFences removes a surrounding ``` fence (optionally tagged, e.g. ```json)
func StripCodeFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// drop the language tag on the opening line
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		if tag := strings.TrimSpace(s[:nl]); tag == "" || !strings.ContainsAny(tag, "{[\"") {
			s = s[nl+1:]
		}
	} else {
		s = strings.TrimPrefix(strings.TrimSpace(s), "json")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// FirstInteger returns the first run of decimal digits in text
func FirstInteger(text string) (int, bool) {
	match := firstIntegerPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		// longer than an int; saturate
		return int(^uint(0) >> 1), true
	}
	return n, true
}

// Clamp bounds n to [lo, hi]
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// DecodeJSON strips code fences and unmarshals the remaining text into T
func DecodeJSON[T any](text string) (T, error) {
	var out T
	body := StripCodeFences(text)
	if body == "" {
		return out, ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return out, fmt.Errorf("failed to decode generated JSON: %w", err)
	}
	return out, nil
}
