// Package session issues, validates, and refreshes signed session tokens
// (JWTs) for server-side request handling, and provides declarative guard
// checks against token claims.
//
// The entry middleware pulls a raw token off the transport (cookie or
// header), verifies it into a request-scoped Token, and silently reissues it
// while the session is active. Guards then gate handlers on the token's
// validity, freshness, or individual claims:
//
//	mgr, err := session.New(session.StaticSecret("secret"))
//	app.Use(mgr.Middleware())
//	app.Get("/dashboard", dashboard, mgr.Active())
//	app.Get("/admin", adminPanel, mgr.Active(), mgr.RequireClaim("admin"))
//
// Tokens carry three independent flags: valid (signature plus any additional
// verify predicate), expired (codec-reported), and stale (inactivity window,
// measured by the stalesAt claim and deliberately independent of trust).
package session
