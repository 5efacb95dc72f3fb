package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/robertKrusekopf/kegelsim-client/internal/domain/message"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/logging"
	"github.com/robertKrusekopf/kegelsim-client/internal/platform/pubsub"
)

// MessageGateway is the remote side of the user's inbox.
type MessageGateway interface {
	Messages(ctx context.Context) ([]message.Message, error)
	MarkMessageRead(ctx context.Context, messageID string) error
	MarkAllMessagesRead(ctx context.Context) error
}

// MessageService lists the inbox and broadcasts after every mutation so
// navigation badges can refresh their unread counts.
type MessageService struct {
	gateway MessageGateway
	bus     *pubsub.Bus
	logger  *logging.Logger
}

func NewMessageService(gateway MessageGateway, bus *pubsub.Bus, logger *logging.Logger) *MessageService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MessageService{
		gateway: gateway,
		bus:     bus,
		logger:  logger,
	}
}

func (s *MessageService) List(ctx context.Context) ([]message.Message, error) {
	items, err := s.gateway.Messages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return items, nil
}

func (s *MessageService) MarkRead(ctx context.Context, messageID string) error {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return fmt.Errorf("%w: message_id is required", ErrInvalidInput)
	}
	if err := s.gateway.MarkMessageRead(ctx, messageID); err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	s.bus.Publish(pubsub.TopicMessagesUpdated)
	return nil
}

func (s *MessageService) MarkAllRead(ctx context.Context) error {
	if err := s.gateway.MarkAllMessagesRead(ctx); err != nil {
		return fmt.Errorf("mark all messages read: %w", err)
	}
	s.bus.Publish(pubsub.TopicMessagesUpdated)
	return nil
}
