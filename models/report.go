package models

// Report is the full output of one pipeline run over a ledger
type Report struct {
	Window      TimeWindow
	Summary     Summary
	Eligible    []AggregateRow
	NonEligible []AggregateRow
	Clients     []string      // distinct clients in first-seen order
	Records     []WagerRecord // filtered records, source order
}

// IsEmpty reports whether no wager fell inside the window
func (r *Report) IsEmpty() bool {
	return len(r.Records) == 0
}

// RoundCount returns the number of filtered wagers
func (r *Report) RoundCount() int {
	return len(r.Records)
}

// SingleClient returns the client name when exactly one client placed the wagers
func (r *Report) SingleClient() (string, bool) {
	if len(r.Clients) != 1 {
		return "", false
	}
	return r.Clients[0], true
}
