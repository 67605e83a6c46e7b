package normalize

import "strings"

// CollapseSpace trims the input and collapses every interior whitespace run
// to a single space. Idempotent: applying it to its own output is a no-op.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
