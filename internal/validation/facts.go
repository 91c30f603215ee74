package validation

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/filingcheck/internal/document"
	"github.com/hyperifyio/filingcheck/internal/money"
	"github.com/hyperifyio/filingcheck/internal/taxonomy"
)

// checkFactValues runs the numeric and textual fact sub-passes. The two fact
// kinds are distinguished by their role in the markup (ix:nonFraction vs
// ix:nonNumeric), never by sniffing the content.
func (e *Engine) checkFactValues(tree *document.Tree, _ taxonomy.EntitySize, res *Result) {
	for n := range tree.ByLocalName("nonfraction") {
		e.checkNumericFact(n, res)
	}
	for n := range tree.ByLocalName("nonnumeric") {
		e.checkTextualFact(n, res)
	}
}

func (e *Engine) checkNumericFact(n *document.Node, res *Result) {
	name := elementName(n)

	// Each required attribute is checked on its own so one fact can carry
	// several diagnostics, which the filer fixes in one pass.
	if !n.HasAttr("contextref") {
		res.addError(Diagnostic{
			Code:     CodeMissingContextRef,
			Message:  fmt.Sprintf("numeric fact %s has no contextRef attribute", name),
			Location: n.Path(),
			Element:  name,
		})
	}
	if !n.HasAttr("decimals") {
		res.addError(Diagnostic{
			Code:     CodeMissingDecimals,
			Message:  fmt.Sprintf("numeric fact %s has no decimals attribute", name),
			Location: n.Path(),
			Element:  name,
		})
	}
	if !n.HasAttr("unitref") {
		res.addError(Diagnostic{
			Code:     CodeMissingUnitRef,
			Message:  fmt.Sprintf("numeric fact %s has no unitRef attribute", name),
			Location: n.Path(),
			Element:  name,
		})
	}

	value := n.Text()
	if value == "" {
		// A genuinely blank optional figure is legal, so advisory only.
		res.addWarning(Diagnostic{
			Code:     CodeEmptyNumericFact,
			Message:  fmt.Sprintf("numeric fact %s has no value", name),
			Location: n.Path(),
			Element:  name,
		})
		return
	}

	d, err := money.Normalize(value)
	if err != nil {
		res.addError(Diagnostic{
			Code:     CodeInvalidNumeric,
			Message:  fmt.Sprintf("numeric fact %s value %q does not parse as a number", name, value),
			Location: n.Path(),
			Element:  name,
		})
		return
	}
	if d.IsZero() && e.isMajorAccount(name) {
		// Zero can be legitimate, so this never blocks submission.
		res.addWarning(Diagnostic{
			Code:     CodeSuspiciousZero,
			Message:  fmt.Sprintf("major account %s is exactly zero; confirm this is intentional", name),
			Location: n.Path(),
			Element:  name,
		})
	}
}

func (e *Engine) checkTextualFact(n *document.Node, res *Result) {
	name := elementName(n)
	if !n.HasAttr("contextref") {
		res.addError(Diagnostic{
			Code:     CodeMissingContextRef,
			Message:  fmt.Sprintf("textual fact %s has no contextRef attribute", name),
			Location: n.Path(),
			Element:  name,
		})
	}
	if n.Text() == "" {
		res.addWarning(Diagnostic{
			Code:     CodeEmptyTextualFact,
			Message:  fmt.Sprintf("textual fact %s has no content", name),
			Location: n.Path(),
			Element:  name,
		})
	}
	// Content-pattern checks (placeholders, dates) belong to the anomaly
	// pass and are not duplicated here.
}

func (e *Engine) isMajorAccount(name string) bool {
	lower := strings.ToLower(name)
	for _, account := range e.cfg.MajorAccounts {
		if strings.Contains(lower, strings.ToLower(account)) {
			return true
		}
	}
	return false
}

// buildStats derives the run counts from the final tree. A fact, for
// counting purposes, is any element whose name attribute is
// namespace-qualified; tagged elements are the subset named by the expected
// taxonomy publisher.
func (e *Engine) buildStats(tree *document.Tree) Stats {
	var s Stats
	for n := range tree.All() {
		if name, ok := n.Attr("name"); ok && strings.Contains(name, ":") {
			s.Facts++
			if strings.HasPrefix(name, e.cfg.TaxonomyPrefix) {
				s.TaggedElements++
			}
		}
		if n.Is("context") {
			s.Contexts++
		}
		if n.Is("unit") {
			s.Units++
		}
	}
	for _, a := range tree.Root.Attrs {
		if strings.HasPrefix(a.Key, "xmlns:") || a.Key == "xmlns" {
			s.Namespaces++
		}
	}
	return s
}
