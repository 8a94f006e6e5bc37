// Package api implements the authenticated request pipeline and the typed
// endpoint catalogue of the fuel-tracker backend.
//
// All transport-level failures are normalized here: an authorization
// rejection becomes ErrSessionExpired (after the stored session is
// cleared), a structured backend failure becomes *BackendError, and a
// request that produced no response at all wraps ErrUnavailable. Callers
// branch with errors.Is / errors.As and never parse endpoint-specific
// error shapes.
package api
