package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ProviderError reports a failed stats-provider call. A zero StatusCode means
// the request never produced a usable response (transport, breaker or decode failure).
type ProviderError struct {
	Resource   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("failed to fetch %s: %d", e.Resource, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("network error while reaching NHL stats API (%s): %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("network error while reaching NHL stats API (%s)", e.Resource)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrDependencyUnavailable
}

// IsProviderError reports whether err came from the stats provider rather than from a bug.
func IsProviderError(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr)
}
