package source

import (
	"github.com/SankarGaneshb/Virtuoso/pkg/config"

	"go.uber.org/fx"
)

var Module = fx.Module("source.module",
	fx.Provide(
		ProvideRegistry,
	),
)

// ProvideRegistry assembles the static source registry. Order here is the
// order sources appear in listings.
func ProvideRegistry(cfg *config.Config) *Registry {
	return NewRegistry(
		NewGitHub(cfg),
		NewDiscord(cfg),
		NewDiscourse(cfg),
		NewYouTube(cfg),
		NewReddit(cfg),
	)
}
