package source

import (
	"context"
	"testing"

	"github.com/SankarGaneshb/Virtuoso/services/contribution"

	"github.com/stretchr/testify/require"
)

type staticSource struct {
	key string
}

func (s *staticSource) PlatformKey() string            { return s.key }
func (s *staticSource) DisplayName() string            { return s.key }
func (s *staticSource) Description() string            { return "static" }
func (s *staticSource) IdentifierKind() IdentifierKind { return IdentifierUsername }
func (s *staticSource) Fetch(ctx context.Context, identifier string) ([]contribution.Contribution, error) {
	return nil, nil
}

func TestRegistryListPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry(
		&staticSource{key: "GitHub"},
		&staticSource{key: "Discord"},
		&staticSource{key: "Forum"},
	)

	listed := r.List()
	require.Len(t, listed, 3)
	require.Equal(t, "GitHub", listed[0].PlatformKey())
	require.Equal(t, "Discord", listed[1].PlatformKey())
	require.Equal(t, "Forum", listed[2].PlatformKey())
}

func TestRegistryFind(t *testing.T) {
	r := NewRegistry(&staticSource{key: "GitHub"})

	src, ok := r.Find("GitHub")
	require.True(t, ok)
	require.Equal(t, "GitHub", src.PlatformKey())

	_, ok = r.Find("MySpace")
	require.False(t, ok)
}

func TestRegistryListIsACopy(t *testing.T) {
	r := NewRegistry(&staticSource{key: "GitHub"})

	listed := r.List()
	listed[0] = &staticSource{key: "Mutated"}

	require.Equal(t, "GitHub", r.List()[0].PlatformKey())
}
