// Package llmjson decodes JSON objects embedded in language model output.
//
// Models wrap their answer in prose or markdown fences often enough that a
// plain json.Unmarshal is not sufficient. Decode tries, in order: the raw
// text, the text with code fences removed, and the span from the first '{'
// to the last '}'. Trailing commas before a closing bracket are removed
// before each retry.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when no attempt yields a valid JSON object.
var ErrNoJSON = errors.New("no JSON object found")

var (
	codeFence     = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*\\n?(.*?)\\n?```")
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// Decode parses the first JSON object found in text into dst.
func Decode(text string, dst any) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: empty input", ErrNoJSON)
	}

	var lastErr error
	for _, candidate := range candidates(text) {
		err := json.Unmarshal([]byte(candidate), dst)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", ErrNoJSON, lastErr)
}

// Extract returns the span between the first '{' and the last '}'.
func Extract(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

func candidates(text string) []string {
	out := []string{text}

	if m := codeFence.FindStringSubmatch(text); m != nil {
		out = append(out, strings.TrimSpace(m[1]))
	}

	for _, c := range append([]string(nil), out...) {
		if obj, ok := Extract(c); ok && obj != c {
			out = append(out, obj)
		}
	}

	n := len(out)
	for _, c := range out[:n] {
		if cleaned := trailingComma.ReplaceAllString(c, "$1"); cleaned != c {
			out = append(out, cleaned)
		}
	}
	return out
}
