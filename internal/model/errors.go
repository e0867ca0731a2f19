package model

import "fmt"

// InputError means a document was malformed or empty. Fatal for that
// document only; other documents in a batch are unaffected.
type InputError struct {
	DocID  string
	Reason string
}

func (e *InputError) Error() string {
	if e.DocID == "" {
		return "input: " + e.Reason
	}
	return fmt.Sprintf("input %s: %s", e.DocID, e.Reason)
}

// ConfigError means a threshold, weight, or vocabulary is missing or
// invalid. Fatal at startup, before any document is processed.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}
