package domain

import (
	"math"
	"time"
)

// Status is the outcome of a check, a validator, or a whole run.
// Aggregation is worst-of: ERROR > FAIL > WARNING > PASS.
type Status string

const (
	StatusPass    Status = "PASS"
	StatusWarning Status = "WARNING"
	StatusFail    Status = "FAIL"
	StatusError   Status = "ERROR"
	StatusSkipped Status = "SKIPPED"
	StatusUnknown Status = "UNKNOWN"
)

func severityRank(s Status) int {
	switch s {
	case StatusError:
		return 4
	case StatusFail:
		return 3
	case StatusWarning:
		return 2
	case StatusPass:
		return 1
	default:
		return 0
	}
}

// WorstOf returns the more severe of two statuses.
func WorstOf(a, b Status) Status {
	if severityRank(b) > severityRank(a) {
		return b
	}
	return a
}

// CheckResult is one named validation outcome inside a validator.
// Immutable once produced; Details carries check-specific evidence.
type CheckResult struct {
	Name    string       `json:"name"`
	Status  Status       `json:"status"`
	Message string       `json:"message"`
	Details CheckDetails `json:"details,omitempty"`
}

// Recommendation returns the check's recommendation text, if any.
func (c CheckResult) Recommendation() string {
	if c.Details == nil {
		return ""
	}
	return c.Details.Recommendation()
}

// ReportSummary tallies check outcomes inside one validator report.
type ReportSummary struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// ValidatorReport is the output of one validator run.
type ValidatorReport struct {
	Validator       string        `json:"validator"`
	Path            string        `json:"path,omitempty"`
	Status          Status        `json:"status"`
	Checks          []CheckResult `json:"checks"`
	Summary         ReportSummary `json:"summary"`
	Recommendations []string      `json:"recommendations,omitempty"`
	Error           string        `json:"error,omitempty"`
}

// ErrorReport builds the synthetic report the runner records when a
// validator fails outright instead of returning a report.
func ErrorReport(validator, msg string) *ValidatorReport {
	return &ValidatorReport{
		Validator: validator,
		Status:    StatusError,
		Error:     msg,
	}
}

// SkippedReport marks a validator that was deliberately not run.
func SkippedReport(validator, reason string) *ValidatorReport {
	return &ValidatorReport{
		Validator: validator,
		Status:    StatusSkipped,
		Error:     reason,
	}
}

// RunCounts tallies validator outcomes across a whole run.
// Skipped validators do not count toward Total.
type RunCounts struct {
	Total    int `json:"total"`
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
	Skipped  int `json:"skipped"`
}

// RunSummary is the output of the runner: every validator's report keyed
// by validator name, run-level counts, and the overall quality score.
type RunSummary struct {
	Results         map[string]*ValidatorReport `json:"results"`
	Summary         RunCounts                   `json:"summary"`
	Status          Status                      `json:"status"`
	QualityScore    int                         `json:"quality_score"`
	Recommendations []string                    `json:"recommendations,omitempty"`
	Duration        time.Duration               `json:"duration_ns"`
}

// Record folds one validator report into the run summary.
func (r *RunSummary) Record(key string, report *ValidatorReport) {
	if r.Results == nil {
		r.Results = make(map[string]*ValidatorReport)
	}
	r.Results[key] = report

	switch report.Status {
	case StatusSkipped:
		r.Summary.Skipped++
		return
	case StatusPass:
		r.Summary.Passed++
	case StatusWarning:
		r.Summary.Warnings++
	default: // FAIL and ERROR both count as failed at run level
		r.Summary.Failed++
	}
	r.Summary.Total++
}

// Finalize computes overall status, quality score, and deduplicated
// recommendations once every validator has been recorded.
func (r *RunSummary) Finalize() {
	switch {
	case r.Summary.Failed > 0:
		r.Status = StatusFail
	case r.Summary.Warnings > 0:
		r.Status = StatusWarning
	case r.Summary.Passed > 0:
		r.Status = StatusPass
	default:
		r.Status = StatusUnknown
	}
	r.QualityScore = QualityScore(r.Summary)
	r.Recommendations = dedupRecommendations(r.Results)
}

// QualityScore maps run counts to a 0-100 score: full credit for passes,
// half credit for warnings.
func QualityScore(c RunCounts) int {
	if c.Total == 0 {
		return 0
	}
	score := (float64(c.Passed) + 0.5*float64(c.Warnings)) / float64(c.Total) * 100
	return int(math.Round(score))
}

// dedupRecommendations flattens per-validator recommendations in declared
// validator order, dropping duplicates across validators.
func dedupRecommendations(results map[string]*ValidatorReport) []string {
	seen := make(map[string]bool)
	var out []string
	for _, key := range ValidatorKeys {
		report, ok := results[string(key)]
		if !ok {
			continue
		}
		for _, rec := range report.Recommendations {
			if rec == "" || seen[rec] {
				continue
			}
			seen[rec] = true
			out = append(out, rec)
		}
	}
	return out
}

// RunEntry is one line of persisted run history.
type RunEntry struct {
	Timestamp    string    `json:"timestamp"`
	Status       Status    `json:"status"`
	QualityScore int       `json:"quality_score"`
	Counts       RunCounts `json:"counts"`
}
