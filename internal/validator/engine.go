package validator

import (
	"sort"

	"invoscan/internal/domain"
)

// Status is the overall outcome for a record.
type Status string

const (
	StatusValid   Status = "valid"
	StatusWarning Status = "warning"
	StatusInvalid Status = "invalid"
)

// Summary holds aggregate counts of validation results.
type Summary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// Report is the full validation outcome for one invoice record.
type Report struct {
	Status  Status   `json:"status"`
	Summary Summary  `json:"summary"`
	Results []Result `json:"results"`
}

// Engine runs every registered rule against a record and aggregates the
// results into a Report.
type Engine struct {
	registry *Registry
}

// NewEngine creates a validation engine over the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Validate runs all rules. A nil record yields an invalid report with a
// single synthetic result rather than a panic.
func (e *Engine) Validate(rec *domain.InvoiceRecord) *Report {
	if rec == nil {
		return &Report{
			Status:  StatusInvalid,
			Summary: Summary{Total: 1, Errors: 1},
			Results: []Result{{
				RuleKey: "record.present", Severity: SeverityError,
				FieldPath: "", Expected: "extracted record", Actual: "<nil>",
				Message: "no extracted record to validate",
			}},
		}
	}

	validators := e.registry.All()
	sort.Slice(validators, func(i, j int) bool {
		return validators[i].RuleKey() < validators[j].RuleKey()
	})

	report := &Report{Status: StatusValid}
	for _, v := range validators {
		for _, res := range v.Validate(rec) {
			res.RuleKey = v.RuleKey()
			res.Severity = v.Severity()
			report.Results = append(report.Results, res)

			report.Summary.Total++
			switch {
			case res.Passed:
				report.Summary.Passed++
			case res.Severity == SeverityError:
				report.Summary.Errors++
			default:
				report.Summary.Warnings++
			}
		}
	}

	switch {
	case report.Summary.Errors > 0:
		report.Status = StatusInvalid
	case report.Summary.Warnings > 0:
		report.Status = StatusWarning
	}
	return report
}
