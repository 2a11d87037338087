package session

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeUnauthorized   = "UNAUTHORIZED"
	textCodeTokenExpired   = "TOKEN_EXPIRED"
	textCodeTokenMalformed = "TOKEN_MALFORMED"
	textCodeNotInitialized = "SESSION_NOT_INITIALIZED"
	textCodeBadConfig      = "SESSION_BAD_CONFIG"
)

// Reasons carried by Unauthorized errors surfaced to the host pipeline.
const (
	ReasonInvalid      = "invalid"
	ReasonStale        = "stale"
	ReasonInsufficient = "insufficient"
)

// ErrTokenExpired reports a token whose signature checked out but whose
// expiration claim is in the past. It never escapes Token.Verify; the state
// machine absorbs it into the expired flag.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed covers every other verification failure: bad signature,
// truncated token, wrong algorithm, unparseable payload.
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode(textCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrNotInitialized is returned when session operations run against a Manager
// that was never built through New.
var ErrNotInitialized = goerrors.New("session manager not initialized", goerrors.CategoryOperation).
	WithTextCode(textCodeNotInitialized)

// ErrUnableToFindSession is the error when the request carries no session token
var ErrUnableToFindSession = goerrors.New("unable to find session", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnableToDecodeSession is returned when the request-scoped value is not a Token
var ErrUnableToDecodeSession = goerrors.New("unable to decode session", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// NewUnauthorized builds the single error kind guards surface through the host
// pipeline. The reason travels in the metadata next to any diagnostics.
func NewUnauthorized(reason string, diagnostics ...map[string]any) *goerrors.Error {
	meta := map[string]any{"reason": reason}
	for _, d := range diagnostics {
		for k, v := range d {
			meta[k] = v
		}
	}
	return goerrors.New("unauthorized: "+reason, goerrors.CategoryAuth).
		WithTextCode(textCodeUnauthorized).
		WithCode(goerrors.CodeUnauthorized).
		WithMetadata(meta)
}

// IsUnauthorized will check for guard rejections
func IsUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode == textCodeUnauthorized
	}
	return false
}

// UnauthorizedReason extracts the rejection reason from a guard error, or ""
// when err is not an Unauthorized error.
func UnauthorizedReason(err error) string {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) || richErr.TextCode != textCodeUnauthorized {
		return ""
	}
	if reason, ok := richErr.Metadata["reason"].(string); ok {
		return reason
	}
	return ""
}

// UnauthorizedDiagnostics returns the metadata attached to a guard error so
// hosts can render claim mismatch details.
func UnauthorizedDiagnostics(err error) map[string]any {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) || richErr.TextCode != textCodeUnauthorized {
		return nil
	}
	return richErr.Metadata
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode == textCodeTokenExpired
	}
	return false
}

// IsMalformedError will check for any non-expiry verification failure
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode == textCodeTokenMalformed
	}
	return false
}

// newConfigError reports setup mistakes. These fail fast at construction and
// must abort startup, never a request.
func newConfigError(msg string) *goerrors.Error {
	return goerrors.New(msg, goerrors.CategoryValidation).
		WithTextCode(textCodeBadConfig).
		WithCode(goerrors.CodeBadRequest)
}

// IsConfigError will check for setup-time configuration failures
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode == textCodeBadConfig
	}
	return false
}
