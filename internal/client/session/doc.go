// Package session owns the authentication-token lifecycle of the client:
// a SQLite-backed store for the bearer token and the cached user profile,
// expiry checks on the token's embedded claim, and the startup/login/logout
// orchestration that keeps the application in exactly one of two states,
// authenticated or unauthenticated.
package session
