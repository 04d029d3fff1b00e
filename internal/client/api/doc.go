// Package api is the FitTrack REST client.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts (AuthClient, GoalClient, WorkoutClient and
//     their union Client) used by the session manager and the stores.
//  2. HTTPClient, a JSON-over-HTTP implementation that attaches the bearer
//     token, tags every request with an X-Request-ID, throttles outgoing
//     calls and maps failures onto the error taxonomy in internal/common.
//
// # Error Handling
//
// Every failure is returned as *common.NetworkError. Its Err field is one of
// common.ErrUnavailable (no response), common.ErrUnauthorized (401/403),
// common.ErrNotFound (404) or common.ErrRequestFailed (any other non-2xx or
// an unreadable body). Message carries the server's {code, message} text
// when present.
//
// HTTPClient is safe for concurrent use.
package api
