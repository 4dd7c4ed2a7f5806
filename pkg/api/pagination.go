package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dexora-ai/dexora/pkg/session"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

var ErrInvalidCursor = errors.New("invalid cursor")

type PaginationParams struct {
	Limit int
	// Before is an opaque cursor taken from a previous page's PrevCursor.
	Before string
}

// messageCursor points at the oldest message of a page. The message ID
// guards against cursors taken from another conversation.
type messageCursor struct {
	Index     int    `json:"i"`
	MessageID string `json:"m"`
}

func encodeCursor(c messageCursor) string {
	buf, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(buf)
}

func decodeCursor(encoded string, messages []session.Message) (int, error) {
	buf, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}

	var c messageCursor
	if err := json.Unmarshal(buf, &c); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}
	if c.Index < 0 || c.Index >= len(messages) || messages[c.Index].ID != c.MessageID {
		return 0, ErrInvalidCursor
	}
	return c.Index, nil
}

// PaginateMessages returns the newest page of messages older than the
// cursor, oldest first, the way a chat view scrolls back.
func PaginateMessages(messages []session.Message, params PaginationParams) ([]session.Message, *PaginationMetadata, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	end := len(messages)
	if params.Before != "" {
		var err error
		if end, err = decodeCursor(params.Before, messages); err != nil {
			return nil, nil, err
		}
	}
	start := max(end-limit, 0)

	page := messages[start:end]
	if page == nil {
		page = []session.Message{}
	}

	meta := &PaginationMetadata{
		TotalMessages: len(messages),
		Limit:         len(page),
	}
	if start > 0 {
		meta.PrevCursor = encodeCursor(messageCursor{Index: start, MessageID: messages[start].ID})
	}
	return page, meta, nil
}
