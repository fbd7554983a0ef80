package domain

// Outcome classifies what happened to one download attempt.
type Outcome uint8

const (
	OutcomeInvalid Outcome = iota
	// OutcomeDownloaded means the file was fetched and written to disk.
	OutcomeDownloaded
	// OutcomeFailed means a network, parse or IO error interrupted the attempt.
	OutcomeFailed
	// OutcomeSkipped means the destination file already existed (or the post
	// was gated out before any attempt).
	OutcomeSkipped
	// OutcomeUnable means no resolver recognizes the post's domain and no
	// extension could be inferred from its URL. Permanent, not an error.
	OutcomeUnable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDownloaded:
		return "OK"
	case OutcomeFailed:
		return "FAILED"
	case OutcomeSkipped:
		return "SKIP"
	case OutcomeUnable:
		return "UNABLE"
	default:
		return "INVALID"
	}
}

// severity orders outcomes for worst-of aggregation. Higher is worse.
func (o Outcome) severity() int {
	switch o {
	case OutcomeSkipped:
		return 0
	case OutcomeDownloaded:
		return 1
	case OutcomeUnable:
		return 2
	case OutcomeFailed:
		return 3
	default:
		return 4
	}
}

// Worst returns the more severe of the two outcomes.
func Worst(a, b Outcome) Outcome {
	if b.severity() > a.severity() {
		return b
	}
	return a
}
