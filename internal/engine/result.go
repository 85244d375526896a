package engine

// Result is the outcome of a completed generation.
// RewriteAttempts counts successful rewrites only; when a rewrite fails the
// last good draft is final and RewriteError carries the failure.
type Result struct {
	FinalOutput      string      `json:"finalOutput"`
	InitialDraft     string      `json:"initialDraft"`
	ViolationCount   int         `json:"violationCount"`
	ViolationsFound  []Violation `json:"violationsFound"`
	RewriteAttempts  int         `json:"rewriteAttempts"`
	ProcessingTimeMs int64       `json:"processingTimeMs"`
	BuyerMode        BuyerMode   `json:"buyerMode"`
	AuthorMode       AuthorMode  `json:"authorMode"`
	PersonaUsed      string      `json:"personaUsed,omitempty"`
	Clean            bool        `json:"clean"`
	RewriteError     string      `json:"rewriteError,omitempty"`
}

func (r *Result) record(violations []Violation, attempt int) {
	for _, v := range violations {
		v.Attempt = attempt
		r.ViolationsFound = append(r.ViolationsFound, v)
	}
	r.ViolationCount = len(r.ViolationsFound)
}
