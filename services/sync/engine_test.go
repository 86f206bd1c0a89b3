package sync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SankarGaneshb/Virtuoso/pkg/config"
	"github.com/SankarGaneshb/Virtuoso/pkg/db/pagination"
	"github.com/SankarGaneshb/Virtuoso/services/account"
	"github.com/SankarGaneshb/Virtuoso/services/aggregate"
	"github.com/SankarGaneshb/Virtuoso/services/contribution"
	"github.com/SankarGaneshb/Virtuoso/services/source"
	"github.com/SankarGaneshb/Virtuoso/services/testutil"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

type recordingSource struct {
	key   string
	items []contribution.Contribution
	calls atomic.Int64
}

func (r *recordingSource) PlatformKey() string                   { return r.key }
func (r *recordingSource) DisplayName() string                   { return r.key }
func (r *recordingSource) Description() string                   { return "recording" }
func (r *recordingSource) IdentifierKind() source.IdentifierKind { return source.IdentifierUsername }

func (r *recordingSource) Fetch(ctx context.Context, identifier string) ([]contribution.Contribution, error) {
	r.calls.Add(1)
	return r.items, nil
}

type fixture struct {
	db     *gorm.DB
	engine *Engine
	src    *recordingSource
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t,
		&account.User{},
		&account.LinkedAccount{},
		&account.ManualContribution{},
		&CachedContribution{},
	)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	accounts := account.NewService(account.ServiceParams{DB: db, Node: node})

	src := &recordingSource{
		key: contribution.PlatformGitHub,
		items: []contribution.Contribution{
			{ID: "gh-1", Platform: contribution.PlatformGitHub, Type: "commit", Description: "Pushed 1 commit", Date: "2024-01-01"},
			{ID: "gh-2", Platform: contribution.PlatformGitHub, Type: "issue", Description: "opened Issue #1", Date: "2024-01-02"},
		},
	}
	registry := source.NewRegistry(src)

	cfg := &config.Config{}
	cfg.Sync.FetchTimeout = time.Second
	cfg.Sync.Interval = time.Hour

	fetcher := aggregate.New(aggregate.Params{Config: cfg, Registry: registry})

	engine := New(Params{
		Config:   cfg,
		DB:       db,
		Accounts: accounts,
		Registry: registry,
		Fetcher:  fetcher,
	})

	return &fixture{db: db, engine: engine, src: src}
}

func (f *fixture) createUser(t *testing.T, id, username string, active bool, withLink bool) {
	t.Helper()

	require.NoError(t, f.db.Create(&account.User{
		ID:       id,
		Username: username,
		IsActive: true,
	}).Error)
	if !active {
		// gorm skips zero-valued fields carrying a default tag on insert,
		// so deactivation has to be an explicit update.
		require.NoError(t, f.db.Model(&account.User{}).
			Where("id = ?", id).Update("is_active", false).Error)
	}

	if withLink {
		require.NoError(t, f.db.Create(&account.LinkedAccount{
			ID:               id + "-gh",
			UserID:           id,
			Platform:         contribution.PlatformGitHub,
			PlatformUsername: username,
		}).Error)
	}
}

func cachedRows(t *testing.T, db *gorm.DB, userID string) []CachedContribution {
	t.Helper()

	var rows []CachedContribution
	require.NoError(t, db.Where("user_id = ?", userID).Order("external_id asc").Find(&rows).Error)
	return rows
}

func TestRunCycleCachesFetchedContributions(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "octocat", true, true)

	require.NoError(t, f.engine.RunCycle(context.Background()))

	rows := cachedRows(t, f.db, "u1")
	require.Len(t, rows, 2)
	require.Equal(t, "gh-1", rows[0].ExternalID)
	require.Equal(t, contribution.PlatformGitHub, rows[0].Platform)
	require.Equal(t, "2024-01-01", rows[0].Date)
	require.False(t, rows[0].FetchedAt.IsZero())

	var user account.User
	require.NoError(t, f.db.First(&user, "id = ?", "u1").Error)
	require.NotNil(t, user.LastActiveAt)
}

func TestRunCycleSkipsInactiveUsers(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "dormant", false, true)

	require.NoError(t, f.engine.RunCycle(context.Background()))

	require.EqualValues(t, 0, f.src.calls.Load())
	require.Empty(t, cachedRows(t, f.db, "u1"))

	var user account.User
	require.NoError(t, f.db.First(&user, "id = ?", "u1").Error)
	require.Nil(t, user.LastActiveAt)
}

func TestRunCycleSkipsUsersWithoutLinks(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "lurker", true, false)

	require.NoError(t, f.engine.RunCycle(context.Background()))
	require.EqualValues(t, 0, f.src.calls.Load())
}

func TestRunCycleUpsertIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "octocat", true, true)
	ctx := context.Background()

	require.NoError(t, f.engine.RunCycle(ctx))
	before := cachedRows(t, f.db, "u1")
	require.Len(t, before, 2)

	// Upstream rewrites the record; on conflict only description, url, and
	// fetched_at may move.
	f.src.items[0].Description = "Pushed 1 commit (edited)"
	f.src.items[0].URL = "https://github.com/octo/widgets"
	f.src.items[0].Date = "2099-12-31"

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, f.engine.RunCycle(ctx))

	after := cachedRows(t, f.db, "u1")
	require.Len(t, after, 2)
	require.Equal(t, "Pushed 1 commit (edited)", after[0].Description)
	require.Equal(t, "https://github.com/octo/widgets", after[0].URL)
	require.Equal(t, "2024-01-01", after[0].Date)
	require.True(t, after[0].FetchedAt.After(before[0].FetchedAt))
}

func TestListCachedPaginatesNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "octocat", true, true)
	ctx := context.Background()

	require.NoError(t, f.engine.RunCycle(ctx))

	first, info, err := f.engine.ListCached(ctx, "u1", pagination.Pagination{Limit: 1})
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, "gh-2", first[0].ExternalID) // dated 2024-01-02, newest
	require.True(t, info.HasMore)
	require.NotEmpty(t, info.NextCursor)

	second, info, err := f.engine.ListCached(ctx, "u1", pagination.Pagination{Limit: 1, Cursor: info.NextCursor})
	require.NoError(t, err)
	require.Len(t, second, 1)
	require.Equal(t, "gh-1", second[0].ExternalID)
	require.False(t, info.HasMore)
	require.Empty(t, info.NextCursor)
}

func TestListCachedRejectsMalformedCursor(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.engine.ListCached(context.Background(), "u1", pagination.Pagination{Cursor: "not-base64!!"})
	require.Error(t, err)
}

func TestRunCycleSkipsWhenPreviousCycleInFlight(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "u1", "octocat", true, true)

	f.engine.inCycle.Store(true)
	require.NoError(t, f.engine.RunCycle(context.Background()))
	require.EqualValues(t, 0, f.src.calls.Load())
	require.Empty(t, cachedRows(t, f.db, "u1"))

	f.engine.inCycle.Store(false)
	require.NoError(t, f.engine.RunCycle(context.Background()))
	require.Len(t, cachedRows(t, f.db, "u1"), 2)
}
