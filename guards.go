package session

import (
	"fmt"

	"github.com/goliatone/go-router"
)

// Guards are pure functions of the current request-scoped Token. A missing
// Token reads as "no valid session"; it never causes a nil dereference. Guard
// failures flow through the configured ErrorHandler so the host pipeline owns
// rendering.

// Active passes only when the request carries a valid, non-stale token. The
// failure reason distinguishes invalid from stale so hosts can redirect to
// login versus a re-auth prompt.
func (m *Manager) Active() router.MiddlewareFunc {
	return m.guard(func(t *Token) error {
		if t == nil || !t.Valid() {
			return NewUnauthorized(ReasonInvalid)
		}
		if t.Stale() {
			return NewUnauthorized(ReasonStale)
		}
		return nil
	})
}

// Valid passes when the request carries a cryptographically valid token,
// stale or not.
func (m *Manager) Valid() router.MiddlewareFunc {
	return m.guard(func(t *Token) error {
		if t == nil || !t.Valid() {
			return NewUnauthorized(ReasonInvalid)
		}
		return nil
	})
}

// RequireClaim builds a guard that compares a claim against an expectation:
//
//	m.RequireClaim("admin")             // claims["admin"] == true
//	m.RequireClaim("level", ">", 3)     // claims["level"] > 3
//
// The operator is validated here, at construction; an unknown operator panics
// with a configuration error so route registration aborts startup. Failures
// carry the claim key, the actual value, the operator, and the expected value
// as diagnostics.
func (m *Manager) RequireClaim(key string, opAndExpected ...any) router.MiddlewareFunc {
	op := OpEqual
	expected := any(true)

	if len(opAndExpected) > 0 {
		parsed, err := parseOperatorArg(opAndExpected[0])
		if err != nil {
			panic(fmt.Sprintf("SESSION: RequireClaim(%q): %v", key, err))
		}
		op = parsed
	}
	if len(opAndExpected) > 1 {
		expected = opAndExpected[1]
	}

	return m.guard(func(t *Token) error {
		var actual any
		if t != nil {
			actual, _ = t.Claim(key)
		}
		if Compare(actual, op, expected) {
			return nil
		}
		return NewUnauthorized(ReasonInsufficient, map[string]any{
			"key":           key,
			"actualValue":   actual,
			"operator":      string(op),
			"expectedValue": expected,
		})
	})
}

func parseOperatorArg(arg any) (Operator, error) {
	switch v := arg.(type) {
	case Operator:
		return ParseOperator(string(v))
	case string:
		return ParseOperator(v)
	}
	return "", newConfigError(fmt.Sprintf("operator must be a string, got %T", arg))
}

func (m *Manager) guard(check func(t *Token) error) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if m == nil || !m.initialized {
				return ErrNotInitialized
			}
			token, _ := FromRouter(ctx, m.cfg.ContextKey)
			if err := check(token); err != nil {
				return m.fail(ctx, err)
			}
			return ctx.Next()
		}
	}
}
