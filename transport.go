package session

import (
	"strings"
	"time"

	"github.com/goliatone/go-router"
)

// Transport moves bare token strings in and out of requests. The core never
// parses cookie or header syntax itself; that stays behind this boundary.
type Transport interface {
	Extract(rc router.Context) (string, bool)
	Persist(rc router.Context, raw string)
	Clear(rc router.Context)
}

// CookieTransport reads and writes the token through a named cookie.
type CookieTransport struct {
	Name    string
	Options CookieOptions
}

func (t CookieTransport) Extract(rc router.Context) (string, bool) {
	raw := rc.Cookies(t.Name)
	return raw, raw != ""
}

func (t CookieTransport) Persist(rc router.Context, raw string) {
	cookie := &router.Cookie{
		Name:     t.Name,
		Value:    raw,
		HTTPOnly: !t.Options.DisableHTTPOnly,
		Secure:   t.Options.Secure,
		SameSite: t.Options.SameSite,
	}
	if t.Options.MaxAge > 0 {
		cookie.Expires = time.Now().Add(t.Options.MaxAge)
	}
	rc.Cookie(cookie)
}

func (t CookieTransport) Clear(rc router.Context) {
	rc.Cookie(&router.Cookie{
		Name:     t.Name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: !t.Options.DisableHTTPOnly,
		Secure:   t.Options.Secure,
		SameSite: t.Options.SameSite,
	})
}

// HeaderTransport reads the token from a request header, stripping the auth
// scheme, and writes it back on the response header.
type HeaderTransport struct {
	Name   string
	Scheme string
}

func (t HeaderTransport) Extract(rc router.Context) (string, bool) {
	value := rc.GetString(t.Name, "")
	if value == "" {
		return "", false
	}

	scheme := strings.TrimSpace(t.Scheme)
	if scheme == "" {
		return strings.TrimSpace(value), true
	}

	l := len(scheme)
	if len(value) > l+1 && strings.EqualFold(value[:l], scheme) {
		return strings.TrimSpace(value[l:]), true
	}
	return "", false
}

func (t HeaderTransport) Persist(rc router.Context, raw string) {
	value := raw
	if t.Scheme != "" {
		value = t.Scheme + " " + raw
	}
	rc.SetHeader(t.Name, value)
}

func (t HeaderTransport) Clear(rc router.Context) {
	rc.SetHeader(t.Name, "")
}

func transportFromConfig(cfg Config) Transport {
	if cfg.Transport != nil {
		return cfg.Transport
	}
	if cfg.TransportMode == TransportHeader {
		return HeaderTransport{Name: cfg.HeaderName, Scheme: cfg.AuthScheme}
	}
	return CookieTransport{Name: cfg.CookieName, Options: cfg.Cookie}
}
