package session

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// Manager owns the process-wide session configuration: the secret source, the
// transport, and the guard constructors. Build one at startup with New and
// share it across handlers; it is read-only after construction.
type Manager struct {
	cfg         Config
	secrets     SecretSource
	transport   Transport
	initialized bool
}

// New validates the configuration once and returns an immutable Manager.
// Configuration errors surface here, synchronously, so misconfiguration
// aborts startup instead of failing per request.
func New(secrets SecretSource, config ...Config) (*Manager, error) {
	if secrets == nil {
		return nil, newConfigError("a secret source is required")
	}

	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}
	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if static, ok := secrets.(StaticSecret); ok && static == "" {
		return nil, newConfigError("signing secret must not be empty")
	}

	return &Manager{
		cfg:         cfg,
		secrets:     secrets,
		transport:   transportFromConfig(cfg),
		initialized: true,
	}, nil
}

// Config returns a copy of the effective configuration.
func (m *Manager) Config() Config {
	return m.cfg
}

// Middleware returns the request-entry middleware. It extracts a raw token
// from the transport, verifies it into a request-scoped Token, attaches the
// Token to the router locals and the standard context, and silently extends
// the session when the token is valid, fresh, and refresh is enabled. It must
// run exactly once per request, before any guard.
func (m *Manager) Middleware() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if m == nil || !m.initialized {
				return m.fail(ctx, ErrNotInitialized)
			}

			key, err := m.secrets.Secret(SecretContext{Request: ctx})
			if err != nil {
				return m.fail(ctx, goerrors.Wrap(err, goerrors.CategoryAuth, "unable to resolve session secret"))
			}

			raw, _ := m.transport.Extract(ctx)

			token := newToken(key, &m.cfg, m.transport)
			token.Verify(raw)

			ctx.Locals(m.cfg.ContextKey, token)
			ctx.SetContext(WithToken(ctx.Context(), token))

			if token.Valid() && !token.Stale() && !m.cfg.DisableRefresh {
				if _, err := token.Resign(); err != nil {
					m.cfg.Logger.Error("session refresh failed: %v", err)
				} else {
					token.Store(ctx)
				}
			}

			return ctx.Next()
		}
	}
}

// Issue signs claims into a new Token and persists it on the response. This
// is the creation capability handed to login-style handlers.
func (m *Manager) Issue(ctx router.Context, claims Claims) (*Token, error) {
	if m == nil || !m.initialized {
		return nil, ErrNotInitialized
	}

	key, err := m.secrets.Secret(SecretContext{Claims: claims})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryAuth, "unable to resolve session secret")
	}

	token := newToken(key, &m.cfg, m.transport)
	if _, err := token.Sign(claims); err != nil {
		return nil, err
	}

	token.Store(ctx)
	ctx.Locals(m.cfg.ContextKey, token)

	return token, nil
}

// Clear removes the persisted token from the response transport.
func (m *Manager) Clear(ctx router.Context) error {
	if m == nil || !m.initialized {
		return ErrNotInitialized
	}
	m.transport.Clear(ctx)
	return nil
}

func (m *Manager) fail(ctx router.Context, err error) error {
	if m != nil && m.initialized {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			m.cfg.Logger.Debug(
				"session middleware error: %s details=%s",
				richErr.Message,
				print.MaybePrettyJSON(richErr.Metadata),
			)
		}
		return m.cfg.ErrorHandler(ctx, err)
	}
	return err
}

// Create signs claims into a standalone Token without persisting it anywhere.
// Useful for tests, CLIs, and out-of-band token minting.
func Create(secret string, claims Claims, config ...Config) (*Token, error) {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}
	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if secret == "" {
		return nil, newConfigError("signing secret must not be empty")
	}

	token := newToken(secret, &cfg, nil)
	return token.Sign(claims)
}
