package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hyperifyio/filingcheck/internal/document"
	"github.com/hyperifyio/filingcheck/internal/taxonomy"
)

// checkStructure validates root namespace declarations and the taxonomy
// schema reference inside the ix:header element.
func (e *Engine) checkStructure(tree *document.Tree, _ taxonomy.EntitySize, res *Result) {
	root := tree.Root

	// Deterministic order over the configured prefix table.
	prefixes := make([]string, 0, len(e.cfg.Namespaces))
	for p := range e.cfg.Namespaces {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		want := e.cfg.Namespaces[prefix]
		got, ok := root.Attr("xmlns:" + prefix)
		if !ok {
			res.addError(Diagnostic{
				Code:     CodeMissingNamespace,
				Message:  fmt.Sprintf("root element does not declare required namespace prefix %q (%s)", prefix, want),
				Location: root.Path(),
				Element:  prefix,
			})
			continue
		}
		if got != want {
			res.addError(Diagnostic{
				Code:     CodeIncorrectNamespace,
				Message:  fmt.Sprintf("namespace prefix %q declares %q, want %q", prefix, got, want),
				Location: root.Path(),
				Element:  prefix,
			})
		}
	}

	// The taxonomy header is matched on its prefixed tag name: a plain
	// HTML <header> element must not satisfy this check.
	var headers []*document.Node
	for n := range tree.Find(func(n *document.Node) bool { return strings.EqualFold(n.Tag, "ix:header") }) {
		headers = append(headers, n)
	}
	if len(headers) == 0 {
		res.addError(Diagnostic{
			Code:    CodeMissingIXHeader,
			Message: "document has no ix:header element; taxonomy references cannot be checked",
		})
		return
	}
	if len(headers) > 1 {
		res.addError(Diagnostic{
			Code:     CodeDuplicateIXHeader,
			Message:  fmt.Sprintf("document declares %d ix:header elements, want exactly one", len(headers)),
			Location: headers[1].Path(),
		})
	}
	header := headers[0]

	schemaRef := header.Descendant("schemaref")
	if schemaRef == nil {
		res.addError(Diagnostic{
			Code:     CodeMissingSchemaRef,
			Message:  "ix:header carries no schemaRef element naming the taxonomy schema",
			Location: header.Path(),
		})
		return
	}
	href, _ := schemaRef.Attr("xlink:href")
	if href == "" {
		href, _ = schemaRef.Attr("href")
	}
	for _, host := range e.cfg.SchemaHosts {
		if strings.Contains(href, host) {
			return
		}
	}
	res.addError(Diagnostic{
		Code:     CodeInvalidSchemaRef,
		Message:  fmt.Sprintf("schemaRef target %q does not reference an accepted taxonomy host (%s)", href, strings.Join(e.cfg.SchemaHosts, ", ")),
		Location: schemaRef.Path(),
	})
}
