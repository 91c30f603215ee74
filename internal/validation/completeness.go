package validation

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/filingcheck/internal/document"
	"github.com/hyperifyio/filingcheck/internal/taxonomy"
)

// checkCompleteness verifies the tier-dependent required-element tables plus
// the regulatory invariants that hold independently of the generic tables.
func (e *Engine) checkCompleteness(tree *document.Tree, size taxonomy.EntitySize, res *Result) {
	for _, req := range e.cfg.RequiredFor(size) {
		if hasTaggedElement(tree, req.Name) {
			continue
		}
		res.addError(Diagnostic{
			Code:    CodeMissingRequiredElement,
			Message: fmt.Sprintf("required element %s (%s) is not tagged anywhere in the document", req.Name, req.Description),
			Element: req.Name,
		})
	}

	inv := e.cfg.Invariants
	if !hasAnyTaggedElement(tree, inv.Turnover) {
		res.addError(Diagnostic{
			Code:    CodeMissingProfitLoss,
			Message: "profit and loss turnover is not tagged; it is mandatory for every entity size",
			Element: strings.Join(inv.Turnover, " or "),
		})
	}
	if !hasAnyTaggedElement(tree, inv.AverageEmployees) {
		res.addError(Diagnostic{
			Code:    CodeMissingAverageEmployees,
			Message: "average number of employees is not tagged; it is mandatory for every entity size",
			Element: strings.Join(inv.AverageEmployees, " or "),
		})
	}
	if size.RequiresDirectorsReport() {
		if !hasAnyTaggedElement(tree, inv.PrincipalActivities) {
			res.addError(Diagnostic{
				Code:    CodeMissingDirectorsReport,
				Message: fmt.Sprintf("principal activities are not tagged; a directors' report is mandatory for %s entities", size),
				Element: strings.Join(inv.PrincipalActivities, " or "),
			})
		}
		if !hasAnyTaggedElement(tree, inv.DirectorName) {
			res.addError(Diagnostic{
				Code:    CodeMissingDirectorNames,
				Message: fmt.Sprintf("no director name is tagged; at least one is mandatory for %s entities", size),
				Element: strings.Join(inv.DirectorName, " or "),
			})
		}
	}
}

// hasTaggedElement reports whether any element in the tree carries the given
// taxonomy name in its name attribute.
func hasTaggedElement(tree *document.Tree, name string) bool {
	return tree.FindFirst(func(n *document.Node) bool {
		v, ok := n.Attr("name")
		return ok && strings.EqualFold(v, name)
	}) != nil
}

func hasAnyTaggedElement(tree *document.Tree, names []string) bool {
	for _, name := range names {
		if hasTaggedElement(tree, name) {
			return true
		}
	}
	return false
}
