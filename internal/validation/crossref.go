package validation

import (
	"fmt"

	"github.com/hyperifyio/filingcheck/internal/document"
	"github.com/hyperifyio/filingcheck/internal/taxonomy"
)

// checkCrossReferences confirms that every contextRef and unitRef anywhere
// in the tree resolves to a declared context or unit id. The walk is
// deliberately tree-wide rather than limited to fact elements, so tagged
// content at any nesting depth is covered.
func (e *Engine) checkCrossReferences(tree *document.Tree, _ taxonomy.EntitySize, res *Result) {
	contextIDs := declaredIDs(tree, "context")
	unitIDs := declaredIDs(tree, "unit")

	for n := range tree.All() {
		if n.Is("context") || n.Is("unit") {
			continue
		}
		if ref, ok := n.Attr("contextref"); ok && len(contextIDs) > 0 {
			if _, declared := contextIDs[ref]; !declared {
				res.addError(Diagnostic{
					Code:     CodeInvalidContextRef,
					Message:  fmt.Sprintf("element %s references undeclared context %q", elementName(n), ref),
					Location: n.Path(),
					Element:  ref,
				})
			}
		}
		if ref, ok := n.Attr("unitref"); ok && len(unitIDs) > 0 {
			if _, declared := unitIDs[ref]; !declared {
				res.addError(Diagnostic{
					Code:     CodeInvalidUnitRef,
					Message:  fmt.Sprintf("element %s references undeclared unit %q", elementName(n), ref),
					Location: n.Path(),
					Element:  ref,
				})
			}
		}
	}
}

// declaredIDs collects the id attributes of all elements with the given
// local name. An empty map means none were declared at all, which the
// context/unit pass reports as its own single error.
func declaredIDs(tree *document.Tree, local string) map[string]struct{} {
	ids := map[string]struct{}{}
	for n := range tree.ByLocalName(local) {
		if id, ok := n.Attr("id"); ok && id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// elementName prefers the element's taxonomy name for diagnostics, falling
// back to its tag name for untagged content.
func elementName(n *document.Node) string {
	if name, ok := n.Attr("name"); ok && name != "" {
		return name
	}
	return n.Tag
}
