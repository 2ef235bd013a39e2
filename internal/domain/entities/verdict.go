package entities

// Reason explains the outcome of a policy evaluation.
type Reason string

const (
	ReasonAllowed                Reason = "allowed"
	ReasonBumpExceedsTarget      Reason = "bump-exceeds-target"
	ReasonPackageExcluded        Reason = "package-excluded"
	ReasonCannotAutoupgradeMajor Reason = "cannot-autoupgrade-major"
	ReasonInvalidVersion         Reason = "invalid-version"
	ReasonAuthorNotAllowed       Reason = "author-not-allowed"
)

// Evaluation is the classification of one change, kept for reporting.
type Evaluation struct {
	Change    Change
	Magnitude Magnitude
}

// Verdict is the final allow/deny decision for a pull request.
type Verdict struct {
	Allowed     bool
	Reason      Reason
	Detail      string
	Package     string    // offending package, empty when allowed
	Magnitude   Magnitude // magnitude of the offending change
	Evaluations []Evaluation
}

// Allow builds an allowing verdict carrying the per-change evaluations.
func Allow(evaluations []Evaluation) Verdict {
	return Verdict{
		Allowed:     true,
		Reason:      ReasonAllowed,
		Magnitude:   Unchanged,
		Evaluations: evaluations,
	}
}

// Deny builds a denying verdict.
func Deny(reason Reason, pkg string, magnitude Magnitude, detail string) Verdict {
	return Verdict{
		Allowed:   false,
		Reason:    reason,
		Detail:    detail,
		Package:   pkg,
		Magnitude: magnitude,
	}
}
