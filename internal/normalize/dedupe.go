package normalize

import "strings"

// DedupeFold compacts a list to its first-seen-order unique entries, where
// uniqueness is case-insensitive. The original casing of the first
// occurrence is kept.
func DedupeFold(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}
