package badge

import (
	"github.com/SankarGaneshb/Virtuoso/pkg/config"

	"go.uber.org/fx"
)

var Module = fx.Module("badge.module",
	fx.Provide(
		ProvideEngine,
	),
)

// ProvideEngine builds the engine from the default rule set plus any
// expression rules appended through configuration.
func ProvideEngine(cfg *config.Config) (*Engine, error) {
	rules := DefaultRules()

	for _, extra := range cfg.Badges.ExtraRules {
		rules.Conditionals = append(rules.Conditionals, ConditionalRule{
			ID:          extra.ID,
			Name:        extra.Name,
			Description: extra.Description,
			Expression:  extra.Expression,
		})
	}

	return NewEngine(rules)
}
