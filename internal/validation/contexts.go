package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/hyperifyio/filingcheck/internal/document"
	"github.com/hyperifyio/filingcheck/internal/taxonomy"
)

const isoDateLayout = "2006-01-02"

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// parseISODate enforces the strict YYYY-MM-DD format; time.Parse alone would
// accept the right shape but the regexp rejects variants like 2023-1-1.
func parseISODate(s string) (time.Time, bool) {
	if !isoDateRe.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(isoDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// checkContextsAndUnits validates every declared reporting context and
// measurement unit. A document with no contexts or no units at all gets a
// single missing-declaration error; the cross-reference pass then skips the
// per-reference check for that kind so one root cause yields one diagnostic.
func (e *Engine) checkContextsAndUnits(tree *document.Tree, _ taxonomy.EntitySize, res *Result) {
	contexts := 0
	for ctx := range tree.ByLocalName("context") {
		contexts++
		e.checkContext(ctx, res)
	}
	if contexts == 0 {
		res.addError(Diagnostic{
			Code:    CodeMissingContexts,
			Message: "document declares no reporting contexts",
		})
	}

	units := 0
	for unit := range tree.ByLocalName("unit") {
		units++
		e.checkUnit(unit, res)
	}
	if units == 0 {
		res.addError(Diagnostic{
			Code:    CodeMissingUnits,
			Message: "document declares no measurement units",
		})
	}
}

func (e *Engine) checkContext(ctx *document.Node, res *Result) {
	id, _ := ctx.Attr("id")
	if id == "" {
		res.addError(Diagnostic{
			Code:     CodeContextMissingID,
			Message:  "context has no id attribute",
			Location: ctx.Path(),
		})
		id = "(unidentified)"
	}

	entity := ctx.FirstChild("entity")
	if entity == nil {
		res.addError(Diagnostic{
			Code:     CodeContextMissingEntity,
			Message:  fmt.Sprintf("context %q has no entity element", id),
			Location: ctx.Path(),
			Element:  id,
		})
	} else if entity.FirstChild("identifier") == nil {
		res.addError(Diagnostic{
			Code:     CodeContextMissingIdentifier,
			Message:  fmt.Sprintf("context %q entity has no identifier element", id),
			Location: entity.Path(),
			Element:  id,
		})
	}

	period := ctx.FirstChild("period")
	if period == nil {
		res.addError(Diagnostic{
			Code:     CodeContextMissingPeriod,
			Message:  fmt.Sprintf("context %q has no period element", id),
			Location: ctx.Path(),
			Element:  id,
		})
		return
	}
	e.checkPeriod(period, id, res)
}

// checkPeriod enforces the period shape rule: exactly one of an instant
// marker or a startDate+endDate pair.
func (e *Engine) checkPeriod(period *document.Node, contextID string, res *Result) {
	instant := period.FirstChild("instant")
	start := period.FirstChild("startdate")
	end := period.FirstChild("enddate")

	hasInstant := instant != nil
	hasRange := start != nil || end != nil
	switch {
	case hasInstant && hasRange:
		res.addError(Diagnostic{
			Code:     CodeAmbiguousContextPeriod,
			Message:  fmt.Sprintf("context %q period declares both an instant and a date range", contextID),
			Location: period.Path(),
			Element:  contextID,
		})
	case !hasInstant && !hasRange:
		res.addError(Diagnostic{
			Code:     CodeInvalidContextPeriod,
			Message:  fmt.Sprintf("context %q period declares neither an instant nor a date range", contextID),
			Location: period.Path(),
			Element:  contextID,
		})
	}

	if instant != nil {
		if _, ok := parseISODate(instant.Text()); !ok {
			res.addError(Diagnostic{
				Code:     CodeInvalidInstantDate,
				Message:  fmt.Sprintf("context %q instant date %q is not a valid YYYY-MM-DD date", contextID, instant.Text()),
				Location: instant.Path(),
				Element:  contextID,
			})
		}
	}

	var startAt, endAt time.Time
	startOK, endOK := false, false
	if start != nil {
		startAt, startOK = parseISODate(start.Text())
		if !startOK {
			res.addError(Diagnostic{
				Code:     CodeInvalidStartDate,
				Message:  fmt.Sprintf("context %q start date %q is not a valid YYYY-MM-DD date", contextID, start.Text()),
				Location: start.Path(),
				Element:  contextID,
			})
		}
	}
	if end != nil {
		endAt, endOK = parseISODate(end.Text())
		if !endOK {
			res.addError(Diagnostic{
				Code:     CodeInvalidEndDate,
				Message:  fmt.Sprintf("context %q end date %q is not a valid YYYY-MM-DD date", contextID, end.Text()),
				Location: end.Path(),
				Element:  contextID,
			})
		}
	}
	if startOK && endOK && !endAt.After(startAt) {
		res.addError(Diagnostic{
			Code:     CodeInvalidDateRange,
			Message:  fmt.Sprintf("context %q period end %s is not after start %s", contextID, end.Text(), start.Text()),
			Location: period.Path(),
			Element:  contextID,
		})
	}
}

func (e *Engine) checkUnit(unit *document.Node, res *Result) {
	id, _ := unit.Attr("id")
	if id == "" {
		res.addError(Diagnostic{
			Code:     CodeUnitMissingID,
			Message:  "unit has no id attribute",
			Location: unit.Path(),
		})
		id = "(unidentified)"
	}
	if unit.Descendant("measure") == nil {
		res.addError(Diagnostic{
			Code:     CodeUnitMissingMeasure,
			Message:  fmt.Sprintf("unit %q declares no measure", id),
			Location: unit.Path(),
			Element:  id,
		})
	}
}
