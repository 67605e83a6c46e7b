package model

// Kind tags which source table a record was harvested from.
type Kind string

const (
	KindDiagnosis Kind = "dx"
	KindProcedure Kind = "proc"
)

// Record is one ICD-9-CM entry in the output dataset, uniquely keyed by Code.
// Struct field order is the JSON field order of the output artifact. Syn is
// only present on records the conditions enrichment actually touched.
type Record struct {
	Code  string   `json:"code"`
	Kind  Kind     `json:"kind"`
	Name  string   `json:"name"`
	Short string   `json:"short"`
	Syn   []string `json:"syn,omitempty"`
}

// Merge folds the given mappings into one, in argument order. On a code
// collision the later mapping wins; the collision count is returned so
// callers can surface it. Diagnosis and procedure code spaces are not
// guaranteed disjoint, so last-write-wins here is observable behavior,
// not an invariant.
func Merge(maps ...map[string]*Record) (map[string]*Record, int) {
	out := make(map[string]*Record)
	collisions := 0
	for _, m := range maps {
		for code, rec := range m {
			if _, ok := out[code]; ok {
				collisions++
			}
			out[code] = rec
		}
	}
	return out, collisions
}
