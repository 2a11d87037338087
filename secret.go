package session

import "github.com/goliatone/go-router"

// SecretContext carries whatever a SecretSource might need to pick a key.
// During verification Request holds the incoming request; during creation
// Claims holds the outgoing payload. Exactly one side is populated.
type SecretContext struct {
	Request router.Context
	Claims  Claims
}

// SecretSource yields the signing/verification key for one operation. It is a
// pure capability: resolved once per sign or verify, no lifecycle of its own.
type SecretSource interface {
	Secret(sc SecretContext) (string, error)
}

// StaticSecret is the constant variant: every operation uses the same key.
type StaticSecret string

func (s StaticSecret) Secret(SecretContext) (string, error) {
	if s == "" {
		return "", newConfigError("signing secret must not be empty")
	}
	return string(s), nil
}

// SecretFunc adapts a function into a SecretSource for context-dependent keys,
// e.g. per-tenant lookup from a request header or a claims field.
type SecretFunc func(sc SecretContext) (string, error)

func (f SecretFunc) Secret(sc SecretContext) (string, error) {
	if f == nil {
		return "", newConfigError("secret resolver must not be nil")
	}
	return f(sc)
}
