package validation

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hyperifyio/filingcheck/internal/document"
	"github.com/hyperifyio/filingcheck/internal/taxonomy"
)

// anomalyPattern pairs a detector with the description used in its
// diagnostic. The patterns form an explicit ordered list evaluated
// first-match-wins, so each element yields at most one placeholder finding
// and every pattern stays independently testable.
type anomalyPattern struct {
	name string
	re   *regexp.Regexp
}

var placeholderPatterns = []anomalyPattern{
	{"bracketed token", regexp.MustCompile(`\[[^\[\]]+\]`)},
	{"brace token", regexp.MustCompile(`\{[^{}]*\}`)},
	{"repeated-X run", regexp.MustCompile(`(?i)xxx+`)},
	{"TBD marker", regexp.MustCompile(`(?i)\b(TBD|PLACEHOLDER)\b`)},
	{"insert marker", regexp.MustCompile(`(?i)\bINSERT\s+\w+`)},
	{"fill-in marker", regexp.MustCompile(`(?i)\bFILL\s+IN\b`)},
	{"angle-bracket token", regexp.MustCompile(`<[^<>]+>`)},
	{"example marker", regexp.MustCompile(`(?i)\b(EXAMPLE|SAMPLE|TEST)\b`)},
	{"generic stand-in", regexp.MustCompile(`(?i)\b(Company Name|Director Name)\b`)},
	{"unfilled date template", regexp.MustCompile(`(?i)\b(DD/MM/YYYY|MM/DD/YYYY|YYYY-MM-DD)\b`)},
	{"dummy date", regexp.MustCompile(`00/00/0000`)},
	{"dummy date", regexp.MustCompile(`99/99/9999`)},
}

// repeatedRunMin is the shortest run of identical characters treated as
// suspicious. Backreferences are unavailable in RE2, so the run is found by
// scanning runes instead of a pattern.
const repeatedRunMin = 5

// longestRun returns the length of the longest run of consecutive identical
// runes in s.
func longestRun(s string) int {
	var prev rune
	cur, longest := 0, 0
	for _, r := range s {
		if r == prev {
			cur++
		} else {
			prev, cur = r, 1
		}
		if cur > longest {
			longest = cur
		}
	}
	return longest
}

// checkAnomalies scans all text content for template leftovers, invalid
// dates in date-bearing fields, and suspicious repeated-character runs. The
// three checks are independent and may all fire for the same element.
func (e *Engine) checkAnomalies(tree *document.Tree, _ taxonomy.EntitySize, res *Result) {
	for n := range tree.All() {
		name := elementName(n)

		// Scan only the node's direct text so a container does not repeat
		// findings already attributed to nested elements. NFKC folding
		// keeps compatibility characters from slipping past the patterns.
		own := norm.NFKC.String(n.OwnText())
		if own != "" {
			for _, p := range placeholderPatterns {
				m := p.re.FindString(own)
				if m == "" {
					continue
				}
				res.addPlaceholder(Diagnostic{
					Code:     CodePlaceholder,
					Message:  fmt.Sprintf("element %s contains template leftover (%s): %q", name, p.name, m),
					Severity: SeverityError,
					Location: n.Path(),
					Element:  name,
				})
				break
			}
			if run := longestRun(own); run >= repeatedRunMin {
				res.addPlaceholder(Diagnostic{
					Code:     CodeRepeatedChars,
					Message:  fmt.Sprintf("element %s contains a run of %d identical characters", name, run),
					Severity: SeverityWarning,
					Location: n.Path(),
					Element:  name,
				})
			}
		}

		if tagName, ok := n.Attr("name"); ok && isDateBearing(tagName) {
			if text := n.Text(); text != "" {
				if _, valid := parseISODate(text); !valid {
					res.addPlaceholder(Diagnostic{
						Code:     CodeInvalidDate,
						Message:  fmt.Sprintf("date field %s contains %q, which is not a valid YYYY-MM-DD date", tagName, text),
						Severity: SeverityError,
						Location: n.Path(),
						Element:  tagName,
					})
				}
			}
		}
	}
}

// isDateBearing recognizes taxonomy names whose values must be dates.
func isDateBearing(name string) bool {
	local := name
	if i := strings.IndexByte(name, ':'); i >= 0 {
		local = name[i+1:]
	}
	return strings.Contains(strings.ToLower(local), "date")
}
