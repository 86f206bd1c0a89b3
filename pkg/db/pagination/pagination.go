package pagination

import (
	"encoding/base64"
	"encoding/json"
)

// Pagination is the query-string shape shared by listing endpoints.
type Pagination struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit,default=50" validate:"gte=1,lte=250"`
}

// Cursor marks a position in a (date desc, id desc) ordered listing. It
// travels as an opaque base64 token so clients cannot depend on its shape.
type Cursor struct {
	Date string `json:"date,omitempty"`
	ID   string `json:"id,omitempty"`
}

type PageInfo struct {
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

func EncodeCursor(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func DecodeCursor(token string) (*Cursor, error) {
	b, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}

	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, err
	}
	return &cursor, nil
}

// BuildPage trims the one-row overshoot used to detect a next page and
// returns the visible rows with their page info.
func BuildPage[T any](rows []T, limit int, cursorOf func(T) Cursor) ([]T, *PageInfo, error) {
	info := &PageInfo{}

	if len(rows) > limit {
		rows = rows[:limit]
		info.HasMore = true
	}

	if info.HasMore && len(rows) > 0 {
		token, err := EncodeCursor(cursorOf(rows[len(rows)-1]))
		if err != nil {
			return nil, nil, err
		}
		info.NextCursor = token
	}

	return rows, info, nil
}
