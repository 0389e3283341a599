package parser

import (
	"encoding/json"
	"regexp"
	"strings"
)

// strategy attempts to recover a JSON object from raw text.
// A nil result means "try the next one".
type strategy func(text string) map[string]any

// Extractor recovers JSON objects from imperfectly delimited model output.
type Extractor struct {
	// fencedRegex matches a brace-delimited block inside a triple-backtick
	// fence, optionally tagged "json", non-greedy across lines.
	fencedRegex *regexp.Regexp

	strategies []strategy
}

// NewExtractor creates an extractor with compiled regexes.
func NewExtractor() *Extractor {
	e := &Extractor{
		fencedRegex: regexp.MustCompile("(?is)```(?:json)?\\s*(\\{.*?\\})\\s*```"),
	}
	e.strategies = []strategy{
		e.parseDirect,
		e.parseFenced,
		e.parseBraced,
		e.salvage,
	}
	return e
}

// Extract recovers a JSON object from the text, or nil when no strategy
// yields a usable result. It never fails on malformed input.
func (e *Extractor) Extract(text string) map[string]any {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	for _, try := range e.strategies {
		if result := try(text); result != nil {
			return result
		}
	}
	return nil
}

// parseDirect succeeds only for a perfectly formed, unwrapped object.
func (e *Extractor) parseDirect(text string) map[string]any {
	var data map[string]any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil
	}
	return data
}

// parseFenced tries each fenced block in order, returning the first that
// parses.
func (e *Extractor) parseFenced(text string) map[string]any {
	for _, match := range e.fencedRegex.FindAllStringSubmatch(text, -1) {
		var data map[string]any
		if err := json.Unmarshal([]byte(strings.TrimSpace(match[1])), &data); err == nil {
			return data
		}
	}
	return nil
}

// parseBraced locates the first balanced {...} block and parses it. Handles
// objects embedded in prose, including nested objects, which the non-greedy
// fence regex cannot.
func (e *Extractor) parseBraced(text string) map[string]any {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil
	}

	candidate := balancedBraces(text, start)
	if candidate == "" {
		return nil
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(candidate), &data); err != nil {
		return nil
	}
	return data
}

// balancedBraces returns the substring from start to the brace that closes
// it, tracking depth while ignoring braces inside double-quoted strings.
// Backslash escapes are honored so an escaped quote does not toggle string
// mode. Returns "" when the object never closes.
func balancedBraces(text string, start int) string {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// Extract is a convenience function using a fresh default extractor.
func Extract(text string) map[string]any {
	return NewExtractor().Extract(text)
}
