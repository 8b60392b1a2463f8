package drift

// LevelCounts holds pair counts by risk level.
type LevelCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Summary aggregates a comparison response.
type Summary struct {
	Risk   Level       `json:"risk"`
	Pairs  int         `json:"pairs"`
	Issues int         `json:"issues"`
	Counts LevelCounts `json:"counts"`
}

// ComputeSummary counts pairs per risk level and issues across all pairs.
func ComputeSummary(r *Response) Summary {
	s := Summary{Risk: r.Risk(), Pairs: len(r.Pairs)}
	for _, p := range r.Pairs {
		switch p.Risk() {
		case LevelHigh:
			s.Counts.High++
		case LevelMedium:
			s.Counts.Medium++
		default:
			s.Counts.Low++
		}
		s.Issues += len(p.Issues)
	}
	return s
}
