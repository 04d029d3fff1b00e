package common

import (
	"context"
	"errors"
)

// Describe turns any error produced by the stores or the session manager
// into a short message suitable for showing to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}

	var ne *NetworkError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Request timed out. Please try again."
	case errors.Is(err, ErrSessionChanged):
		return "You were signed out before the request completed."
	case errors.Is(err, ErrNotAuthenticated):
		return "Please log in first."
	case errors.Is(err, ErrUnavailable):
		return "Server is unavailable. Please try again later."
	case errors.Is(err, ErrUnauthorized):
		if errors.Is(err, ErrAuthentication) {
			return "Invalid email or password."
		}
		return "Your session has expired. Please log in again."
	case errors.Is(err, ErrNotFound):
		return "The item no longer exists."
	case errors.As(err, &ne) && ne.Message != "":
		return ne.Message
	case errors.Is(err, ErrAuthentication):
		return "Authentication failed."
	default:
		return "An error occurred. Please try again."
	}
}
