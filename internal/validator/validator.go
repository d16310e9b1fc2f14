// Package validator checks extracted invoice records for format problems,
// arithmetic inconsistencies, and missing fields. Extraction never fails a
// scan on these; validation reports them so a reviewer knows what to check
// against the source document.
package validator

import (
	"invoscan/internal/domain"
)

// Severity classifies how a failed rule is reported.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Result is the outcome of one rule against one field.
type Result struct {
	RuleKey   string   `json:"rule_key"`
	Severity  Severity `json:"severity"`
	Passed    bool     `json:"passed"`
	FieldPath string   `json:"field_path"`
	Expected  string   `json:"expected"`
	Actual    string   `json:"actual"`
	Message   string   `json:"message"`
}

// Validator is the interface for a single built-in validation rule.
type Validator interface {
	RuleKey() string
	Severity() Severity
	Validate(rec *domain.InvoiceRecord) []Result
}

// Registry maps rule keys to Validator implementations.
type Registry struct {
	validators map[string]Validator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{validators: make(map[string]Validator)}
}

// Register adds a validator to the registry.
func (r *Registry) Register(v Validator) {
	r.validators[v.RuleKey()] = v
}

// Get returns the validator for a given rule key, or nil if not found.
func (r *Registry) Get(key string) Validator {
	return r.validators[key]
}

// All returns all registered validators.
func (r *Registry) All() []Validator {
	out := make([]Validator, 0, len(r.validators))
	for _, v := range r.validators {
		out = append(out, v)
	}
	return out
}

// Default returns a Registry with every built-in rule registered.
func Default() *Registry {
	r := NewRegistry()
	for _, v := range builtinRules() {
		r.Register(v)
	}
	return r
}
