package session

import (
	"time"

	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// StaleAtClaim is the claim holding the inactivity deadline as unix
// milliseconds. Signing stamps it; verification reads it back.
const StaleAtClaim = "stalesAt"

// Token is the signed credential artifact: the encoded string, its decoded
// claims, and three independent trust/freshness flags. A Token is constructed
// per request or per explicit creation call and is exclusively owned by that
// request context; nothing here is safe for cross-request sharing.
type Token struct {
	raw        string
	claims     Claims
	signingKey string

	valid   bool
	expired bool
	stale   bool

	cfg       *Config
	transport Transport
}

// TokenView is the public projection of a Token. The signing key and
// configuration are never part of it.
type TokenView struct {
	Raw     string `json:"token"`
	Claims  Claims `json:"claims"`
	Valid   bool   `json:"valid"`
	Expired bool   `json:"expired"`
	Stale   bool   `json:"stale"`
}

func newToken(key string, cfg *Config, transport Transport) *Token {
	return &Token{
		signingKey: key,
		claims:     Claims{},
		cfg:        cfg,
		transport:  transport,
	}
}

// Raw returns the encoded token text, empty until signed or verified.
func (t *Token) Raw() string {
	return t.raw
}

// Claims returns the decoded payload. It is never nil: a failed decode leaves
// an empty mapping.
func (t *Token) Claims() Claims {
	return t.claims
}

// Claim looks up a single claim value.
func (t *Token) Claim(key string) (any, bool) {
	return t.claims.Get(key)
}

// Valid reports whether signature verification succeeded and the additional
// verify predicate, when configured, accepted the token.
func (t *Token) Valid() bool {
	return t.valid
}

// Expired reports whether the codec classified the token as expired. Valid
// implies not expired.
func (t *Token) Expired() bool {
	return t.expired
}

// Stale reports the inactivity check: true unless the stalesAt claim is
// strictly in the future. Staleness is independent of validity on purpose; it
// measures inactivity, not trust.
func (t *Token) Stale() bool {
	return t.stale
}

// Sign encodes claims into a fresh token. It stamps stalesAt at now plus the
// configured stale window, strips codec-managed time claims so the pass-through
// sign options apply cleanly, and resets the state to valid and fresh.
// Returns the token for chaining.
func (t *Token) Sign(claims Claims) (*Token, error) {
	if claims == nil {
		claims = Claims{}
	}

	next := claims.clone()
	delete(next, "exp")
	delete(next, "iat")
	delete(next, "nbf")
	next[StaleAtClaim] = t.now().Add(t.cfg.StaleAfter).UnixMilli()

	if t.cfg.SignOptions.StampTokenID {
		if _, ok := next["jti"]; !ok {
			next["jti"] = uuid.NewString()
		}
	}

	raw, err := t.cfg.Codec.Encode(next, t.signingKey, t.cfg.SignOptions)
	if err != nil {
		return t, err
	}

	t.raw = raw
	t.claims = next
	t.valid = true
	t.expired = false
	t.stale = false

	return t, nil
}

// Verify decodes raw and classifies the result into the token's state flags.
// Codec failures are fully absorbed here; they never escape to the caller.
// A missing input verifies as an empty string and lands in Invalid+Other.
func (t *Token) Verify(raw string) *Token {
	t.raw = raw
	t.valid = false
	t.expired = false

	claims, err := t.cfg.Codec.DecodeVerified(raw, t.signingKey, t.cfg.VerifyOptions)
	switch {
	case err == nil:
		t.claims = claims
		t.valid = true
	case IsTokenExpiredError(err):
		t.claims = t.cfg.Codec.DecodeUnverified(raw)
		t.expired = true
	default:
		t.claims = t.cfg.Codec.DecodeUnverified(raw)
	}

	if t.claims == nil {
		t.claims = Claims{}
	}

	if t.valid && t.cfg.AdditionalVerify != nil && !t.cfg.AdditionalVerify(t) {
		t.valid = false
	}

	// One clock read per verify. Fresh only when the claim exists and is
	// strictly in the future; an untrusted payload without a usable stamp is
	// always reported stale.
	t.stale = true
	if staleAt, ok := t.staleDeadline(); ok && staleAt.After(t.now()) {
		t.stale = false
	}

	return t
}

// Resign reissues a brand-new valid and fresh token from whatever claims are
// currently held, including a stale or expired token's last known payload.
// This is the silent refresh path.
func (t *Token) Resign() (*Token, error) {
	return t.Sign(t.claims)
}

// Revoke invokes the configured revoke callback. Token state is untouched;
// the callback owns any external side effect. Returns the token for chaining.
func (t *Token) Revoke() *Token {
	if t.cfg.OnRevoke != nil {
		t.cfg.OnRevoke(t)
	}
	return t
}

// Store hands the encoded token to the transport for persistence on the
// response. No-op when the token has no transport or nothing signed yet.
// Returns the token for chaining.
func (t *Token) Store(rc router.Context) *Token {
	if t.transport != nil && t.raw != "" {
		t.transport.Persist(rc, t.raw)
	}
	return t
}

// Serialize produces the public view of the token.
func (t *Token) Serialize() TokenView {
	return TokenView{
		Raw:     t.raw,
		Claims:  t.claims.clone(),
		Valid:   t.valid,
		Expired: t.expired,
		Stale:   t.stale,
	}
}

func (t *Token) staleDeadline() (time.Time, bool) {
	v, ok := t.claims.Get(StaleAtClaim)
	if !ok {
		return time.Time{}, false
	}
	ms, ok := toNumber(v)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

func (t *Token) now() time.Time {
	if t.cfg != nil && t.cfg.Clock != nil {
		return t.cfg.Clock()
	}
	return time.Now()
}
