package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Admission errors
	ErrRateLimited  = fmt.Errorf("rate limit exceeded")
	ErrUnauthorized = fmt.Errorf("not authenticated")

	// Resolution errors
	ErrUnsupportedLink = fmt.Errorf("unsupported link")
	ErrTitleLookup     = fmt.Errorf("could not fetch video info")
	ErrTrackNotFound   = fmt.Errorf("track not found")
	ErrUpstreamSearch  = fmt.Errorf("catalog search failed")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
