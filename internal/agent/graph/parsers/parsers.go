// Package parsers extracts structured payloads from raw model output.
// Models wrap JSON in prose or code fences more often than not, so every
// extractor here works on a best-effort scan rather than a strict unmarshal.
package parsers

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no JSON object found in content")

// ExtractJSONObject finds the first balanced top-level JSON object in content
// and unmarshals it. Code fences and surrounding prose are ignored.
func ExtractJSONObject(content string) (map[string]any, error) {
	raw, err := firstJSONObject(content)
	if err != nil {
		return nil, err
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// ExtractDestination pulls the "destination" field out of a classification
// response. Fails when the object is missing the key or it is not a string.
func ExtractDestination(content string) (string, error) {
	obj, err := ExtractJSONObject(content)
	if err != nil {
		return "", err
	}

	dest, ok := obj["destination"].(string)
	if !ok || dest == "" {
		return "", errors.New("classification object has no destination")
	}
	return strings.TrimSpace(dest), nil
}

// firstJSONObject returns the first brace-balanced substring. Braces inside
// JSON strings are accounted for so payload text cannot break the scan.
func firstJSONObject(content string) (string, error) {
	start := strings.IndexByte(content, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		ch := content[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}
