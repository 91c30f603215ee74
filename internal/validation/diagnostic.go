package validation

import "time"

// Severity classifies a diagnostic. Fatal aborts the pipeline, error blocks
// submission, warning is advisory only.
type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code is a stable, machine-checkable diagnostic identifier.
type Code string

const (
	CodeParseError Code = "PARSE_ERROR"

	CodeMissingNamespace     Code = "MISSING_NAMESPACE"
	CodeIncorrectNamespace   Code = "INCORRECT_NAMESPACE_URI"
	CodeMissingIXHeader      Code = "MISSING_IX_HEADER"
	CodeDuplicateIXHeader    Code = "DUPLICATE_IX_HEADER"
	CodeMissingSchemaRef     Code = "MISSING_SCHEMA_REF"
	CodeInvalidSchemaRef     Code = "INVALID_SCHEMA_REF"

	CodeMissingContexts           Code = "MISSING_CONTEXTS"
	CodeMissingUnits              Code = "MISSING_UNITS"
	CodeContextMissingID          Code = "CONTEXT_MISSING_ID"
	CodeContextMissingEntity      Code = "CONTEXT_MISSING_ENTITY"
	CodeContextMissingIdentifier  Code = "CONTEXT_MISSING_ENTITY_IDENTIFIER"
	CodeContextMissingPeriod      Code = "CONTEXT_MISSING_PERIOD"
	CodeAmbiguousContextPeriod    Code = "AMBIGUOUS_CONTEXT_PERIOD"
	CodeInvalidContextPeriod      Code = "INVALID_CONTEXT_PERIOD"
	CodeInvalidInstantDate        Code = "INVALID_INSTANT_DATE"
	CodeInvalidStartDate          Code = "INVALID_START_DATE"
	CodeInvalidEndDate            Code = "INVALID_END_DATE"
	CodeInvalidDateRange          Code = "INVALID_DATE_RANGE"
	CodeUnitMissingID             Code = "UNIT_MISSING_ID"
	CodeUnitMissingMeasure        Code = "UNIT_MISSING_MEASURE"

	CodeMissingRequiredElement  Code = "MISSING_REQUIRED_ELEMENT"
	CodeMissingProfitLoss       Code = "MISSING_PROFIT_LOSS"
	CodeMissingDirectorsReport  Code = "MISSING_DIRECTORS_REPORT"
	CodeMissingDirectorNames    Code = "MISSING_DIRECTOR_NAMES"
	CodeMissingAverageEmployees Code = "MISSING_AVERAGE_EMPLOYEES"

	CodeInvalidContextRef Code = "INVALID_CONTEXT_REF"
	CodeInvalidUnitRef    Code = "INVALID_UNIT_REF"

	CodeEmptyNumericFact  Code = "EMPTY_NUMERIC_FACT"
	CodeEmptyTextualFact  Code = "EMPTY_TEXTUAL_FACT"
	CodeMissingContextRef Code = "MISSING_CONTEXT_REF"
	CodeMissingDecimals   Code = "MISSING_DECIMALS_ATTRIBUTE"
	CodeMissingUnitRef    Code = "MISSING_UNIT_REF"
	CodeInvalidNumeric    Code = "INVALID_NUMERIC_VALUE"
	CodeSuspiciousZero    Code = "SUSPICIOUS_ZERO_VALUE"

	// Anomaly-detector codes. These keep their historical lowercase form
	// because downstream filing workflows match on them.
	CodePlaceholder     Code = "placeholder"
	CodeInvalidDate     Code = "invalid_date"
	CodeRepeatedChars   Code = "suspicious repeated characters"
)

// Diagnostic is one located finding. It is a tagged record, never a bare
// string, so the surrounding workflow can match on Code and Severity.
type Diagnostic struct {
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Location string   `json:"location,omitempty"`
	Element  string   `json:"element,omitempty"`
}

// Stats are derived counts over the parsed tree plus the run's elapsed time.
// They are computed once and never mutated afterwards.
type Stats struct {
	Facts          int           `json:"facts"`
	TaggedElements int           `json:"taggedElements"`
	Contexts       int           `json:"contexts"`
	Units          int           `json:"units"`
	Namespaces     int           `json:"namespaces"`
	Elapsed        time.Duration `json:"elapsed"`
}

// Result is the full outcome of one validation run.
type Result struct {
	// RunID correlates this run with audit-log entries in the surrounding
	// filing workflow. It plays no part in gating.
	RunID        string       `json:"runId"`
	Valid        bool         `json:"isValid"`
	Errors       []Diagnostic `json:"errors"`
	Warnings     []Diagnostic `json:"warnings"`
	Placeholders []Diagnostic `json:"placeholders"`
	Stats        Stats        `json:"statistics"`
}

func (r *Result) addError(d Diagnostic) {
	d.Severity = SeverityError
	r.Errors = append(r.Errors, d)
}

func (r *Result) addWarning(d Diagnostic) {
	d.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, d)
}

func (r *Result) addPlaceholder(d Diagnostic) {
	r.Placeholders = append(r.Placeholders, d)
}

// CriticalPlaceholders returns the placeholder findings that block
// submission.
func (r *Result) CriticalPlaceholders() []Diagnostic {
	var out []Diagnostic
	for _, p := range r.Placeholders {
		if p.Severity == SeverityError {
			out = append(out, p)
		}
	}
	return out
}

// finalize computes the gating bit: valid iff no errors and no placeholder
// at error severity.
func (r *Result) finalize() {
	r.Valid = len(r.Errors) == 0 && len(r.CriticalPlaceholders()) == 0
}
