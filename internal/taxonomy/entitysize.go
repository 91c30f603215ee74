package taxonomy

import "fmt"

// EntitySize is the filer's regulatory size classification. It selects which
// completeness rule-set applies on top of the always-required baseline.
type EntitySize string

const (
	Micro  EntitySize = "micro"
	Small  EntitySize = "small"
	Medium EntitySize = "medium"
	Large  EntitySize = "large"
)

// Sizes lists every valid classification in ascending order of disclosure
// burden.
var Sizes = []EntitySize{Micro, Small, Medium, Large}

// ParseEntitySize maps user input onto an EntitySize.
func ParseEntitySize(s string) (EntitySize, error) {
	switch EntitySize(s) {
	case Micro, Small, Medium, Large:
		return EntitySize(s), nil
	}
	return "", fmt.Errorf("unknown entity size %q (want micro, small, medium or large)", s)
}

// RequiresDirectorsReport reports whether the size tier must disclose
// principal activities and named directors. Micro-entities are exempt.
func (s EntitySize) RequiresDirectorsReport() bool {
	return s != Micro
}
