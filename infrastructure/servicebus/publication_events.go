package servicebus

import (
	"context"
	"encoding/json"

	"content-planner/domain/model"
	"content-planner/infrastructure/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
)

type messageSender interface {
	SendMessage(ctx context.Context, message *azservicebus.Message, options *azservicebus.SendMessageOptions) error
	Close(ctx context.Context) error
}

// PublicationEvents sends publication lifecycle events to a queue.
type PublicationEvents struct {
	queue     string
	newSender func(queue string) (messageSender, error)
}

func NewPublicationEvents(client *azservicebus.Client, queue string) *PublicationEvents {
	return &PublicationEvents{
		queue: queue,
		newSender: func(queue string) (messageSender, error) {
			return client.NewSender(queue, nil)
		},
	}
}

func (p *PublicationEvents) PublishScheduled(ctx context.Context, evt model.PublicationScheduled) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	sender, err := p.newSender(p.queue)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while making new sender service bus.")
		return err
	}
	defer func() {
		if err := sender.Close(context.Background()); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing sender.")
		}
	}()

	contentType := "application/json"
	subject := evt.Type
	msg := &azservicebus.Message{
		Body:        body,
		ContentType: &contentType,
		Subject:     &subject,
		ApplicationProperties: map[string]any{
			"user_id": evt.UserID,
		},
	}
	if err := sender.SendMessage(ctx, msg, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}
	return nil
}
