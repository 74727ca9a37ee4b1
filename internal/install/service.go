package install

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Authorization failure kinds. Anything else returned by Authorize is an
// infrastructure error, not a client mistake.
var (
	ErrNoHeader        = errors.New("missing authorization header")
	ErrMalformedHeader = errors.New("malformed authorization header")
	ErrUnknownID       = errors.New("unknown installation id")
)

// Registry is the read side of the installation store.
type Registry interface {
	GetByID(ctx context.Context, id string) (*Installation, error)
}

// Service gates uploads on the installation registry.
type Service struct {
	registry Registry
}

// NewService creates a new install Service.
func NewService(registry Registry) *Service {
	return &Service{registry: registry}
}

// Authorize validates a raw Authorization header value. The header must be
// exactly two whitespace-separated tokens; the second is looked up as the
// installation token. The scheme token is not interpreted. Every call hits
// the registry, there is no caching.
func (s *Service) Authorize(ctx context.Context, rawHeader string) (*Installation, error) {
	if rawHeader == "" {
		return nil, ErrNoHeader
	}

	parts := strings.Fields(rawHeader)
	if len(parts) != 2 {
		return nil, ErrMalformedHeader
	}

	inst, err := s.registry.GetByID(ctx, parts[1])
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnknownID
	}
	if err != nil {
		return nil, fmt.Errorf("look up installation: %w", err)
	}
	return inst, nil
}

// FailureMessage maps an authorization failure to its client-facing message.
// It reports false for errors that are not client mistakes.
func FailureMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrNoHeader):
		return "No authorization header present.", true
	case errors.Is(err, ErrMalformedHeader):
		return "Invalid authorization header present.", true
	case errors.Is(err, ErrUnknownID):
		return "Invalid installation ID.", true
	}
	return "", false
}
