// Package common contains shared constants and the error taxonomy used across
// the FitTrack client and the reference API.
package common

// AuthorizationHeaderName carries the bearer credential on REST requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token in the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName correlates client log lines with server log lines.
const RequestIDHeaderName = "X-Request-ID"

// MaxNotesLength is the maximum number of characters accepted in workout notes.
const MaxNotesLength = 255

// MinPasswordLength is the minimal accepted password length on registration.
const MinPasswordLength = 8
