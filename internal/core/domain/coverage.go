package domain

// CoverageReport is the coverage calculator's output: how much of the
// in-scope source tree is claimed by at least one document's Paths patterns.
type CoverageReport struct {
	// Total is the number of in-scope source paths after exclude
	// filtering.
	Total int `json:"total"`

	// Covered is the number of in-scope paths matched by at least one
	// document pattern.
	Covered int `json:"covered"`

	// Uncovered lists the in-scope paths no document claims.
	Uncovered []string `json:"uncovered,omitempty"`
}

// Ratio returns the coverage percentage. An empty scope is defined as 100%:
// zero in-scope files trivially satisfy any threshold.
func (r CoverageReport) Ratio() float64 {
	if r.Total == 0 {
		return 100.0
	}
	return float64(r.Covered) / float64(r.Total) * 100.0
}
