package utils

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no JSON object found in response")

// ExtractJSONObject strips markdown fences and returns the first balanced {...} in s.
func ExtractJSONObject(s string) (string, error) {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	if start == -1 {
		return "", ErrNoJSONObject
	}
	end := findMatchingBrace(s, start)
	if end == -1 {
		return "", ErrNoJSONObject
	}

	out := s[start : end+1]
	if !json.Valid([]byte(out)) {
		return "", ErrNoJSONObject
	}
	return out, nil
}

// DecodeJSONObject extracts the first object from an LLM reply and unmarshals it into v.
func DecodeJSONObject(s string, v any) error {
	raw, err := ExtractJSONObject(s)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}

func findMatchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
