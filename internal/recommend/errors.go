// Package recommend provides the client for the external recommendation
// provider and the validation gate applied to everything it returns.
package recommend

import "errors"

var (
	// ErrProviderUnavailable indicates the recommendation provider is unreachable
	ErrProviderUnavailable = errors.New("recommendation provider unavailable")

	// ErrInvalidResponse indicates the provider response could not be parsed
	ErrInvalidResponse = errors.New("invalid response from recommendation provider")

	// ErrConnectionFailed indicates the HTTP connection failed
	ErrConnectionFailed = errors.New("connection to recommendation provider failed")

	// ErrNoRecommendations indicates the provider returned an empty result
	ErrNoRecommendations = errors.New("provider returned no recommendations")
)
