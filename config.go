package session

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// TransportMode selects where tokens are read from and written to.
type TransportMode string

const (
	TransportCookie TransportMode = "cookie"
	TransportHeader TransportMode = "header"
)

// DefaultCookieName is the cookie tokens are persisted under.
const DefaultCookieName = "jwt-express"

// DefaultContextKey is the request-scope property the verified token is
// attached to.
const DefaultContextKey = "jwt"

// DefaultHeaderName is the header used by the header transport.
const DefaultHeaderName = "Authorization"

// DefaultAuthScheme is the scheme stripped from header-borne tokens.
const DefaultAuthScheme = "Bearer"

// DefaultStaleAfter is the inactivity window after which a valid token is
// considered stale.
const DefaultStaleAfter = 15 * time.Minute

// CookieOptions controls how the cookie transport persists tokens. Cookies
// are written HTTP-only unless DisableHTTPOnly is set.
type CookieOptions struct {
	// MaxAge sets the cookie expiry relative to write time. Zero writes a
	// session cookie.
	MaxAge          time.Duration
	Secure          bool
	DisableHTTPOnly bool
	SameSite        string
}

// Config holds session options. It is immutable after New: every field is
// defaulted at construction time and validated once, then shared read-only by
// all concurrent request handlers.
type Config struct {
	// TransportMode defines where tokens travel: cookie or header.
	TransportMode TransportMode

	// CookieName defines the cookie tokens are persisted under.
	CookieName string

	// Cookie defines persist options for the cookie transport.
	Cookie CookieOptions

	// HeaderName and AuthScheme configure the header transport.
	HeaderName string
	AuthScheme string

	// ContextKey defines the request-scope property for the verified token.
	ContextKey string

	// StaleAfter defines the inactivity window for staleness. Zero uses
	// DefaultStaleAfter; negative values fail validation.
	StaleAfter time.Duration

	// DisableRefresh turns off the silent reissue of non-stale valid tokens
	// on every request.
	DisableRefresh bool

	// SignOptions is passed through to the codec when encoding.
	SignOptions SignOptions

	// VerifyOptions is passed through to the codec when decoding.
	VerifyOptions VerifyOptions

	// AdditionalVerify is ANDed into validity after signature verification.
	AdditionalVerify func(t *Token) bool

	// OnRevoke runs when Token.Revoke is called. The callback owns any
	// external side effect, e.g. denylisting; token state is untouched.
	OnRevoke func(t *Token)

	// Transport overrides the transport built from TransportMode.
	Transport Transport

	// ErrorHandler receives guard and middleware failures. The default
	// returns the error to the host pipeline unchanged.
	ErrorHandler router.ErrorHandler

	// Codec overrides the golang-jwt backed default.
	Codec Codec

	Logger Logger

	// Clock is the time source for staleness stamps and checks. Tests
	// inject a fixed clock here.
	Clock func() time.Time
}

func (c Config) withDefaults() Config {
	if c.TransportMode == "" {
		c.TransportMode = TransportCookie
	}
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.HeaderName == "" {
		c.HeaderName = DefaultHeaderName
	}
	if c.AuthScheme == "" {
		c.AuthScheme = DefaultAuthScheme
	}
	if c.ContextKey == "" {
		c.ContextKey = DefaultContextKey
	}
	if c.StaleAfter == 0 {
		c.StaleAfter = DefaultStaleAfter
	}
	if c.Codec == nil {
		c.Codec = NewCodec()
	}
	if c.Logger == nil {
		c.Logger = defLogger{}
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
	if c.ErrorHandler == nil {
		c.ErrorHandler = func(ctx router.Context, err error) error {
			return err
		}
	}
	return c
}

// Validate checks the configuration once at setup. A failure here must abort
// process startup.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.TransportMode, validation.In(TransportCookie, TransportHeader)),
		validation.Field(&c.StaleAfter, validation.Min(time.Duration(0))),
		validation.Field(&c.CookieName, validation.Required),
		validation.Field(&c.ContextKey, validation.Required),
	)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid session configuration").
			WithTextCode(textCodeBadConfig)
	}
	return nil
}
