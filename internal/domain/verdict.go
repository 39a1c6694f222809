package domain

// Verdict is the outcome of CSRF token verification. There are no
// partial states: a request either carries a token that verifies for
// its session, or it is rejected with one of the two failure verdicts.
type Verdict string

const (
	VerdictValid        Verdict = "valid"
	VerdictMissingToken Verdict = "missing_token"
	VerdictInvalidToken Verdict = "invalid_token"
)

// ErrorCode returns the machine-readable code reported to clients for
// a failure verdict. Empty for VerdictValid.
func (v Verdict) ErrorCode() string {
	switch v {
	case VerdictMissingToken:
		return "CSRF_TOKEN_MISSING"
	case VerdictInvalidToken:
		return "CSRF_TOKEN_INVALID"
	default:
		return ""
	}
}
