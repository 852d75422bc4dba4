// Package settings parses and serializes artwork settings as JSON or bounded
// plain text. Nothing here ever deserializes into live objects.
package settings

import (
	"encoding/json"
)

// MaxDescriptionLen bounds plain-text descriptions.
const MaxDescriptionLen = 2000

type Kind int

const (
	None Kind = iota
	Structured
	PlainText
)

// Value is the decoded form of a settings row: either a structured JSON
// value or a bounded plain-text description, never both.
type Value struct {
	Kind       Kind
	Structured interface{}
	Text       string
}

// Fields is the only shape the settings editor writes.
type Fields struct {
	Colors    string `json:"colors"`
	Animation bool   `json:"animation"`
	Public    bool   `json:"public"`
}

// Decode interprets a raw settings payload. Valid JSON passes through as a
// structured value; anything else is wrapped as plain text truncated to the
// length cap. Empty input means no settings.
func Decode(raw string) Value {
	if raw == "" {
		return Value{Kind: None}
	}

	var obj interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err == nil {
		return Value{Kind: Structured, Structured: obj}
	}

	return Value{Kind: PlainText, Text: Truncate(raw)}
}

// EncodeFields serializes editor fields to the fixed-key JSON object.
func EncodeFields(f Fields) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// EncodeDescription stores a free-text description through the plain-text
// path. Empty descriptions encode to the empty string (no settings row).
func EncodeDescription(description string) string {
	if description == "" {
		return ""
	}
	return Truncate(description)
}

// Description extracts the human-readable description from a decoded value,
// whichever path it was saved through.
func (v Value) Description() string {
	switch v.Kind {
	case PlainText:
		return v.Text
	case Structured:
		if m, ok := v.Structured.(map[string]interface{}); ok {
			if d, ok := m["description"].(string); ok {
				return d
			}
		}
	}
	return ""
}

// Truncate caps s at MaxDescriptionLen characters (not bytes, so a multi-byte
// rune is never split).
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) > MaxDescriptionLen {
		return string(runes[:MaxDescriptionLen])
	}
	return s
}
