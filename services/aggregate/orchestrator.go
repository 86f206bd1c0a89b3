package aggregate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/services/account"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"
	"github.com/SankarGaneshb/Virtuoso/services/source"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Orchestrator fans one fetch per linked account out to the registered
// sources, bounding and isolating each so that no upstream failure ever
// reaches a caller.
type Orchestrator struct {
	registry *source.Registry
	timeout  time.Duration
}

type Params struct {
	fx.In
	Config   *config.Config
	Registry *source.Registry
}

func New(p Params) *Orchestrator {
	timeout := p.Config.Sync.FetchTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Orchestrator{
		registry: p.Registry,
		timeout:  timeout,
	}
}

// Gather fetches contributions for every linked account concurrently and
// returns the flattened, validated results. Accounts on unknown platforms
// are skipped with a warning. Gather never fails: with every source down it
// returns an empty slice.
func (o *Orchestrator) Gather(ctx context.Context, accounts []account.LinkedAccount) []contribution.Contribution {
	results := make(chan []contribution.Contribution, len(accounts))

	var wg sync.WaitGroup
	for _, acct := range accounts {
		src, ok := o.registry.Find(acct.Platform)
		if !ok {
			zap.L().Warn("no source registered for platform, skipping account",
				zap.String("platform", acct.Platform),
				zap.String("user_id", acct.UserID),
			)
			continue
		}

		wg.Add(1)
		go func(src source.Source, identifier string) {
			defer wg.Done()
			results <- o.FetchOne(ctx, src, identifier)
		}(src, acct.Identifier())
	}

	wg.Wait()
	close(results)

	var all []contribution.Contribution
	for items := range results {
		all = append(all, items...)
	}
	return all
}

// FetchOne runs a single source fetch bounded by the configured timeout.
// The fetch races the deadline; on expiry the fetch goroutine is abandoned
// and its eventual result discarded, since sources are not guaranteed to
// honor cancellation. Errors, panics, and invalid items all degrade to a
// smaller (possibly empty) result.
func (o *Orchestrator) FetchOne(ctx context.Context, src source.Source, identifier string) []contribution.Contribution {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	type outcome struct {
		items []contribution.Contribution
		err   error
	}

	// Buffered so the abandoned loser can still complete its send.
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("source panicked: %v", r)}
			}
		}()
		items, err := src.Fetch(ctx, identifier)
		done <- outcome{items: items, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			zap.L().Warn("source fetch failed",
				zap.String("platform", src.PlatformKey()),
				zap.Error(out.err),
			)
			return nil
		}
		return o.validate(src, out.items)
	case <-ctx.Done():
		zap.L().Warn("source fetch timed out",
			zap.String("platform", src.PlatformKey()),
			zap.Duration("timeout", o.timeout),
		)
		return nil
	}
}

// validate drops items violating the mandatory-field invariant, one by one.
func (o *Orchestrator) validate(src source.Source, items []contribution.Contribution) []contribution.Contribution {
	valid := items[:0:0]
	for _, item := range items {
		if err := item.Validate(); err != nil {
			zap.L().Warn("skipping invalid item from source",
				zap.String("platform", src.PlatformKey()),
				zap.String("item_id", item.ID),
				zap.Error(err),
			)
			continue
		}
		valid = append(valid, item)
	}
	return valid
}
