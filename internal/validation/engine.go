// Package validation implements the multi-pass inline-XBRL filing checker:
// structural, context/unit, completeness, cross-reference, fact-value and
// anomaly passes over one parsed document tree, accumulating located
// diagnostics instead of stopping at the first defect.
package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/filingcheck/internal/document"
	"github.com/hyperifyio/filingcheck/internal/taxonomy"
)

// Engine runs the validation pipeline. It holds only the immutable rule
// configuration; every run allocates its own tree and diagnostic lists, so
// one Engine may serve concurrent callers.
type Engine struct {
	cfg *taxonomy.Config
}

// New returns an Engine using the given rule configuration, or the embedded
// defaults when cfg is nil.
func New(cfg *taxonomy.Config) *Engine {
	if cfg == nil {
		cfg = taxonomy.Default()
	}
	return &Engine{cfg: cfg}
}

// Validate checks one generated filing document against the rule tables for
// the declared entity size and returns every finding in a single result.
func (e *Engine) Validate(raw string, size taxonomy.EntitySize) *Result {
	res, _ := e.ValidateContext(context.Background(), raw, size)
	return res
}

// ValidateContext is Validate with caller-side cancellation. The pipeline is
// pure and bounded by document size, so cancellation is only observed
// between passes; a cancelled run returns the context error and no result,
// never a partially validated one.
func (e *Engine) ValidateContext(ctx context.Context, raw string, size taxonomy.EntitySize) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}

	tree, err := document.Parse(raw)
	if err != nil {
		// Fatal: there is no tree for the remaining passes to read.
		res.Errors = append(res.Errors, Diagnostic{
			Code:     CodeParseError,
			Message:  fmt.Sprintf("document could not be parsed: %v", err),
			Severity: SeverityFatal,
		})
		res.Stats.Elapsed = time.Since(start)
		res.finalize()
		return res, nil
	}

	passes := []struct {
		name string
		run  func(*document.Tree, taxonomy.EntitySize, *Result)
	}{
		{"structural", e.checkStructure},
		{"contexts-and-units", e.checkContextsAndUnits},
		{"completeness", e.checkCompleteness},
		{"cross-references", e.checkCrossReferences},
		{"fact-values", e.checkFactValues},
		{"anomalies", e.checkAnomalies},
	}
	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Str("pass", p.name).Msg("validation cancelled")
			return nil, err
		}
		e.runPass(p.name, tree, size, res, p.run)
	}

	res.Stats = e.buildStats(tree)
	res.Stats.Elapsed = time.Since(start)
	res.finalize()
	return res, nil
}

// runPass isolates one pass so a defect in it cannot stop the remaining
// passes from reporting their findings.
func (e *Engine) runPass(name string, tree *document.Tree, size taxonomy.EntitySize, res *Result, fn func(*document.Tree, taxonomy.EntitySize, *Result)) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("panic", r).Str("pass", name).Msg("validation pass failed; continuing")
		}
	}()
	fn(tree, size, res)
}
