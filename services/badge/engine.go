package badge

import (
	"fmt"

	"github.com/SankarGaneshb/Virtuoso/services/contribution"

	"github.com/google/cel-go/cel"
	"go.uber.org/zap"
)

// Engine scores timelines against a rule set. Construction resolves every
// rule so a bad configuration fails at startup, not per request.
type Engine struct {
	tiers        []TierRule
	conditionals []compiledConditional
}

type compiledConditional struct {
	rule      ConditionalRule
	predicate func(Stats) bool
	program   cel.Program
}

// NewEngine validates the rule set and compiles any expression rules.
func NewEngine(rules RuleSet) (*Engine, error) {
	for i := 1; i < len(rules.Tiers); i++ {
		if rules.Tiers[i].Threshold <= rules.Tiers[i-1].Threshold {
			return nil, fmt.Errorf("tier rule %s: threshold %d not strictly above previous tier %d",
				rules.Tiers[i].ID, rules.Tiers[i].Threshold, rules.Tiers[i-1].Threshold)
		}
	}

	env, err := newStatsEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}

	compiled := make([]compiledConditional, 0, len(rules.Conditionals))
	for _, rule := range rules.Conditionals {
		cc := compiledConditional{rule: rule}

		switch {
		case rule.Predicate != "":
			fn, ok := predicateTable[rule.Predicate]
			if !ok {
				return nil, fmt.Errorf("conditional rule %s: unknown predicate %q", rule.ID, rule.Predicate)
			}
			cc.predicate = fn
		case rule.Expression != "":
			ast, issues := env.Compile(rule.Expression)
			if issues != nil && issues.Err() != nil {
				return nil, fmt.Errorf("conditional rule %s: failed to compile expression: %w", rule.ID, issues.Err())
			}
			program, err := env.Program(ast)
			if err != nil {
				return nil, fmt.Errorf("conditional rule %s: failed to create program: %w", rule.ID, err)
			}
			cc.program = program
		default:
			return nil, fmt.Errorf("conditional rule %s: neither predicate nor expression set", rule.ID)
		}

		compiled = append(compiled, cc)
	}

	return &Engine{
		tiers:        rules.Tiers,
		conditionals: compiled,
	}, nil
}

func newStatsEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("total_count", cel.IntType),
		cel.Variable("merged_pr_count", cel.IntType),
		cel.Variable("issue_count", cel.IntType),
		cel.Variable("chat_count", cel.IntType),
		cel.Variable("has_chat_role", cel.BoolType),
		cel.Variable("forum_post_count", cel.IntType),
		cel.Variable("publication_count", cel.IntType),
	)
}

// Score derives stats from the timeline and returns the earned badges: the
// single highest satisfied tier (if any) first, then every satisfied
// conditional in declaration order. Overlapping conditionals are not
// de-duplicated.
func (e *Engine) Score(timeline []contribution.Contribution) []Badge {
	stats := DeriveStats(timeline)

	earned := make([]Badge, 0, 1+len(e.conditionals))

	var topTier *TierRule
	for i := range e.tiers {
		if stats.TotalCount >= e.tiers[i].Threshold {
			topTier = &e.tiers[i]
		}
	}
	if topTier != nil {
		earned = append(earned, topTier.badge())
	}

	for _, cc := range e.conditionals {
		if cc.satisfied(stats) {
			earned = append(earned, cc.rule.badge())
		}
	}

	return earned
}

func (cc compiledConditional) satisfied(stats Stats) bool {
	if cc.predicate != nil {
		return cc.predicate(stats)
	}

	val, _, err := cc.program.Eval(stats.vars())
	if err != nil {
		zap.L().Warn("badge expression evaluation failed",
			zap.String("rule_id", cc.rule.ID),
			zap.Error(err),
		)
		return false
	}

	matched, ok := val.Value().(bool)
	if !ok {
		zap.L().Warn("badge expression did not return a boolean",
			zap.String("rule_id", cc.rule.ID),
		)
		return false
	}
	return matched
}
