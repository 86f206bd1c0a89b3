package aggregate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/services/account"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"
	"github.com/SankarGaneshb/Virtuoso/services/source"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

type fakeSource struct {
	key    string
	items  []contribution.Contribution
	err    error
	delay  time.Duration
	panics bool
}

func (f *fakeSource) PlatformKey() string                   { return f.key }
func (f *fakeSource) DisplayName() string                   { return f.key }
func (f *fakeSource) Description() string                   { return "test source" }
func (f *fakeSource) IdentifierKind() source.IdentifierKind { return source.IdentifierUsername }

func (f *fakeSource) Fetch(ctx context.Context, identifier string) ([]contribution.Contribution, error) {
	if f.panics {
		panic("source blew up")
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.items, f.err
}

func newOrchestrator(timeout time.Duration, sources ...source.Source) *Orchestrator {
	cfg := &config.Config{}
	cfg.Sync.FetchTimeout = timeout
	return New(Params{
		Config:   cfg,
		Registry: source.NewRegistry(sources...),
	})
}

func item(id string) contribution.Contribution {
	return contribution.Contribution{
		ID:          id,
		Platform:    contribution.PlatformGitHub,
		Type:        "commit",
		Description: "Pushed 1 commit",
		Date:        "2024-01-01",
	}
}

func TestGatherFlattensAcrossSources(t *testing.T) {
	o := newOrchestrator(time.Second,
		&fakeSource{key: "GitHub", items: []contribution.Contribution{item("gh-1"), item("gh-2")}},
		&fakeSource{key: "Forum", items: []contribution.Contribution{item("f-1")}},
	)

	out := o.Gather(context.Background(), []account.LinkedAccount{
		{UserID: "u1", Platform: "GitHub", PlatformUsername: "octocat"},
		{UserID: "u1", Platform: "Forum", PlatformUsername: "octocat"},
	})

	require.Len(t, out, 3)
}

func TestGatherSkipsUnknownPlatform(t *testing.T) {
	o := newOrchestrator(time.Second,
		&fakeSource{key: "GitHub", items: []contribution.Contribution{item("gh-1")}},
	)

	out := o.Gather(context.Background(), []account.LinkedAccount{
		{UserID: "u1", Platform: "GitHub", PlatformUsername: "octocat"},
		{UserID: "u1", Platform: "MySpace", PlatformUsername: "octocat"},
	})

	require.Len(t, out, 1)
	require.Equal(t, "gh-1", out[0].ID)
}

func TestGatherNeverFails(t *testing.T) {
	o := newOrchestrator(50*time.Millisecond,
		&fakeSource{key: "GitHub", err: errors.New("rate limited")},
		&fakeSource{key: "Forum", delay: time.Second},
		&fakeSource{key: "Discord", panics: true},
	)

	out := o.Gather(context.Background(), []account.LinkedAccount{
		{UserID: "u1", Platform: "GitHub", PlatformUsername: "octocat"},
		{UserID: "u1", Platform: "Forum", PlatformUsername: "octocat"},
		{UserID: "u1", Platform: "Discord", PlatformUserID: "123"},
	})

	require.Empty(t, out)
}

func TestGatherPartialFailureKeepsHealthyResults(t *testing.T) {
	o := newOrchestrator(time.Second,
		&fakeSource{key: "GitHub", err: errors.New("boom")},
		&fakeSource{key: "Forum", items: []contribution.Contribution{item("f-1")}},
	)

	out := o.Gather(context.Background(), []account.LinkedAccount{
		{UserID: "u1", Platform: "GitHub", PlatformUsername: "octocat"},
		{UserID: "u1", Platform: "Forum", PlatformUsername: "octocat"},
	})

	require.Len(t, out, 1)
	require.Equal(t, "f-1", out[0].ID)
}

func TestFetchOneTimesOut(t *testing.T) {
	src := &fakeSource{key: "GitHub", delay: 500 * time.Millisecond, items: []contribution.Contribution{item("gh-1")}}
	o := newOrchestrator(20*time.Millisecond, src)

	start := time.Now()
	out := o.FetchOne(context.Background(), src, "octocat")

	require.Nil(t, out)
	require.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestFetchOneRecoversFromPanic(t *testing.T) {
	src := &fakeSource{key: "GitHub", panics: true}
	o := newOrchestrator(time.Second, src)

	require.Nil(t, o.FetchOne(context.Background(), src, "octocat"))
}

func TestFetchOneDropsInvalidItemsIndividually(t *testing.T) {
	items := make([]contribution.Contribution, 0, 10)
	for i := 0; i < 9; i++ {
		items = append(items, item(fmt.Sprintf("gh-%d", i)))
	}
	items = append(items, contribution.Contribution{ID: "gh-bad", Description: "no date"})

	src := &fakeSource{key: "GitHub", items: items}
	o := newOrchestrator(time.Second, src)

	out := o.FetchOne(context.Background(), src, "octocat")
	require.Len(t, out, 9)
	for _, c := range out {
		require.NotEqual(t, "gh-bad", c.ID)
	}
}
