package drift

// Report is everything the writers need to render one gate run.
type Report struct {
	Tool         string    `json:"tool"`
	Version      string    `json:"version"`
	Baseline     string    `json:"baseline"`
	Environments []string  `json:"environments"`
	FailOn       Level     `json:"failOn"`
	Failed       bool      `json:"failed"`
	Summary      Summary   `json:"summary"`
	Response     *Response `json:"response"`
}

// BuildReport summarizes resp and applies the failure threshold.
func BuildReport(resp *Response, baseline string, environments []string, failOn Level) *Report {
	summary := ComputeSummary(resp)
	return &Report{
		Baseline:     baseline,
		Environments: environments,
		FailOn:       Normalize(string(failOn)),
		Failed:       MeetsThreshold(summary.Risk, failOn),
		Summary:      summary,
		Response:     resp,
	}
}

// PairsWithIssues returns the pairs that have at least one issue, in order.
func (r *Report) PairsWithIssues() []Pair {
	var out []Pair
	for _, p := range r.Response.Pairs {
		if len(p.Issues) > 0 {
			out = append(out, p)
		}
	}
	return out
}
