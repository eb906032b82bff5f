package stripe

import "errors"

var (
	// ErrNetworkError indicates the Stripe API could not be reached
	ErrNetworkError = errors.New("network error")

	// ErrInvalidRequest indicates Stripe rejected the request parameters
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnauthorized indicates the API key was rejected
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionFailed indicates session creation failed on the Stripe side
	ErrSessionFailed = errors.New("checkout session failed")

	// ErrInvalidSignature indicates a webhook payload failed signature verification
	ErrInvalidSignature = errors.New("invalid webhook signature")
)
