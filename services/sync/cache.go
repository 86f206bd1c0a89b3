package sync

import (
	"context"
	"fmt"

	"github.com/SankarGaneshb/Virtuoso/pkg/db/pagination"
	"github.com/SankarGaneshb/Virtuoso/pkg/errutil"
	"github.com/SankarGaneshb/Virtuoso/pkg/repository"
)

// ListCached pages through the user's durable timeline, newest first.
// Unlike the live view this never touches an upstream platform.
func (e *Engine) ListCached(ctx context.Context, userID string, p pagination.Pagination) ([]CachedContribution, *pagination.PageInfo, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 250 {
		limit = 250
	}

	opts := []repository.QueryOption{
		repository.WithOrder("date desc, id desc"),
		repository.WithLimit(limit + 1),
	}

	if p.Cursor != "" {
		cursor, err := pagination.DecodeCursor(p.Cursor)
		if err != nil {
			return nil, nil, errutil.BadRequest("malformed cursor", errutil.WithErr(err))
		}
		opts = append(opts, repository.WithFilter(
			"date < ? OR (date = ? AND id < ?)", cursor.Date, cursor.Date, cursor.ID))
	}

	rows, err := e.cache.Find(ctx, &CachedContribution{UserID: userID}, opts...)
	if err != nil {
		return nil, nil, err
	}

	out := make([]CachedContribution, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}

	return pagination.BuildPage(out, limit, func(row CachedContribution) pagination.Cursor {
		return pagination.Cursor{Date: row.Date, ID: fmt.Sprint(row.ID)}
	})
}
