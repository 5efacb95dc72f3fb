package kegelapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/message"
)

type messagePayload struct {
	ID        int64  `json:"id"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

func (c *Client) Messages(ctx context.Context) ([]message.Message, error) {
	var payload []messagePayload
	if err := c.getJSON(ctx, "/messages", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	out := make([]message.Message, 0, len(payload))
	for _, item := range payload {
		out = append(out, message.Message{
			ID:        formatID(item.ID),
			Subject:   item.Subject,
			Body:      item.Body,
			IsRead:    item.IsRead,
			CreatedAt: parseServerTime(item.CreatedAt),
		})
	}
	return out, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, messageID string) error {
	path := "/messages/" + url.PathEscape(messageID) + "/read"
	if err := c.postJSON(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("mark message read message_id=%s: %w", messageID, err)
	}
	return nil
}

func (c *Client) MarkAllMessagesRead(ctx context.Context) error {
	if err := c.postJSON(ctx, "/messages/read-all", nil, nil); err != nil {
		return fmt.Errorf("mark all messages read: %w", err)
	}
	return nil
}
