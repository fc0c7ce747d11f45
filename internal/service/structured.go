package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoJSONObject is returned when a completion holds no parseable object.
	ErrNoJSONObject = errors.New("no JSON object in response")
	// ErrMissingField is returned when a required field is absent or null.
	ErrMissingField = errors.New("required field missing")
)

// Completer produces free text for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
}

// ParseMode controls how a JSON object is located in a completion.
type ParseMode int

const (
	// ParseLenient takes the first balanced {...} block, ignoring prose around it.
	ParseLenient ParseMode = iota
	// ParseStrict requires the whole completion to be one JSON object.
	ParseStrict
)

// Schema declares the object a caller expects back.
type Schema struct {
	Name      string
	Required  []string
	MaxTokens int
}

// Generator produces a value matching a schema from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, schema Schema, out interface{}) error
}

// StructuredGenerator turns a Completer into a Generator.
type StructuredGenerator struct {
	completer Completer
	mode      ParseMode
}

// NewStructuredGenerator wraps c with the given parse mode.
func NewStructuredGenerator(c Completer, mode ParseMode) *StructuredGenerator {
	return &StructuredGenerator{completer: c, mode: mode}
}

// Generate runs the prompt, locates the JSON object, checks that every
// required field is present and non-null, and decodes it into out.
func (g *StructuredGenerator) Generate(ctx context.Context, prompt string, schema Schema, out interface{}) error {
	text, err := g.completer.Complete(ctx, prompt, CompletionOptions{
		System:    "You respond with a single JSON object and nothing else.",
		MaxTokens: schema.MaxTokens,
		JSONMode:  g.mode == ParseStrict,
	})
	if err != nil {
		return fmt.Errorf("%s: completion failed: %w", schema.Name, err)
	}

	raw, err := g.locate(text)
	if err != nil {
		return fmt.Errorf("%s: %w", schema.Name, err)
	}

	return DecodeObject(raw, schema, out)
}

func (g *StructuredGenerator) locate(text string) (string, error) {
	if g.mode == ParseStrict {
		trimmed := strings.TrimSpace(text)
		if !strings.HasPrefix(trimmed, "{") || !json.Valid([]byte(trimmed)) {
			return "", ErrNoJSONObject
		}
		return trimmed, nil
	}
	return ExtractJSONObject(text)
}

// DecodeObject validates required fields in raw and decodes it into out.
func DecodeObject(raw string, schema Schema, out interface{}) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return fmt.Errorf("%s: %w: %v", schema.Name, ErrNoJSONObject, err)
	}

	for _, name := range schema.Required {
		v, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("%s: %w: %s", schema.Name, ErrMissingField, name)
		}
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%s: invalid field types: %w", schema.Name, err)
	}
	return nil
}

// ExtractJSONObject returns the first balanced {...} block of text that is
// valid JSON. Braces inside string literals are ignored.
func ExtractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	for start >= 0 {
		if end := matchBrace(text, start); end >= 0 {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}

		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", ErrNoJSONObject
}

// matchBrace returns the index of the brace closing the one at start, or -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
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
