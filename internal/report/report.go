// Package report renders a validation result for operators. Rendering is a
// pure projection: it never alters the result and is never used for gating.
package report

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/filingcheck/internal/validation"
)

// Render produces the deterministic multi-section text report.
func Render(res *validation.Result) string {
	var b strings.Builder

	if res.Valid {
		b.WriteString("FILING VALIDATION: PASSED\n")
	} else {
		b.WriteString("FILING VALIDATION: FAILED\n")
	}
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n\n")

	b.WriteString("# Statistics\n")
	fmt.Fprintf(&b, "Facts:           %d\n", res.Stats.Facts)
	fmt.Fprintf(&b, "Tagged elements: %d\n", res.Stats.TaggedElements)
	fmt.Fprintf(&b, "Contexts:        %d\n", res.Stats.Contexts)
	fmt.Fprintf(&b, "Units:           %d\n", res.Stats.Units)
	fmt.Fprintf(&b, "Namespaces:      %d\n", res.Stats.Namespaces)
	fmt.Fprintf(&b, "Elapsed:         %s\n", res.Stats.Elapsed)
	b.WriteString("\n")

	writeSection(&b, "Errors", res.Errors)
	writeSection(&b, "Critical placeholders", res.CriticalPlaceholders())
	writeSection(&b, "Warnings", append(append([]validation.Diagnostic{}, res.Warnings...), advisoryPlaceholders(res)...))

	b.WriteString("# Conclusion\n")
	if res.Valid {
		b.WriteString("The document is structurally sound and complete; it may be submitted.\n")
	} else {
		b.WriteString("The document must not be submitted until every error and critical placeholder above is resolved.\n")
	}
	return b.String()
}

func writeSection(b *strings.Builder, title string, items []validation.Diagnostic) {
	fmt.Fprintf(b, "# %s (%d)\n", title, len(items))
	if len(items) == 0 {
		b.WriteString("none\n\n")
		return
	}
	for _, d := range items {
		fmt.Fprintf(b, "- [%s] %s", d.Code, d.Message)
		if d.Location != "" {
			fmt.Fprintf(b, " (at %s)", d.Location)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func advisoryPlaceholders(res *validation.Result) []validation.Diagnostic {
	var out []validation.Diagnostic
	for _, p := range res.Placeholders {
		if p.Severity == validation.SeverityWarning {
			out = append(out, p)
		}
	}
	return out
}
