package domain

// Asset is one concrete downloadable binary resource produced by a resolver.
type Asset struct {
	URL string
	// Extension overrides extension inference from the URL when non-empty
	// (e.g. v.redd.it fallback URLs carry no dotted suffix).
	Extension string
}

// Result is the per-post report produced by the dispatcher.
type Result struct {
	// Seq is the 1-based position of the post across the whole run.
	Seq int64
	// Title is the sanitized, truncated title used for destination filenames.
	Title string
	// URL is the post's original link, echoed for failure triage.
	URL string
	// Outcomes holds one entry per resolved asset. A post that never reached
	// the download engine (gated, unresolvable, resolver failure) holds a
	// single entry.
	Outcomes []Outcome
}

// Outcome collapses the per-asset outcomes to the worst one, so a post with
// nine downloads and one failure still surfaces the failure.
func (r Result) Outcome() Outcome {
	agg := OutcomeInvalid
	for i, o := range r.Outcomes {
		if i == 0 {
			agg = o
			continue
		}
		agg = Worst(agg, o)
	}
	return agg
}
