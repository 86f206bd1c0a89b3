package source

import (
	"context"
	"fmt"

	"github.com/SankarGaneshb/Virtuoso/services/contribution"
)

// IdentifierKind tells callers which linked-account identifier a source
// expects to receive in Fetch.
type IdentifierKind string

const (
	IdentifierUsername   IdentifierKind = "username"
	IdentifierPlatformID IdentifierKind = "platform_id"
)

// Source is one pluggable upstream platform. Fetch may fail, hang, or
// return garbage; the fetch orchestrator is responsible for bounding and
// isolating it.
type Source interface {
	PlatformKey() string
	DisplayName() string
	Description() string
	IdentifierKind() IdentifierKind
	Fetch(ctx context.Context, identifier string) ([]contribution.Contribution, error)
}

// FetchError wraps an upstream failure with the platform it came from.
type FetchError struct {
	Platform string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch from %s failed: %v", e.Platform, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func fetchErrf(platform, format string, args ...any) error {
	return &FetchError{Platform: platform, Err: fmt.Errorf(format, args...)}
}
