package pubsub

import (
	"context"
	"encoding/json"
	"sync"

	"content-planner/domain/model"
	"content-planner/infrastructure/logger"

	"cloud.google.com/go/pubsub"
)

// PublicationEvents publishes publication lifecycle events to one topic.
type PublicationEvents struct {
	client  *pubsub.Client
	topicID string

	mu    sync.Mutex
	topic *pubsub.Topic
}

func NewPublicationEvents(client *pubsub.Client, topicID string) *PublicationEvents {
	return &PublicationEvents{client: client, topicID: topicID}
}

func (p *PublicationEvents) PublishScheduled(ctx context.Context, evt model.PublicationScheduled) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	topic, err := p.resolveTopic(ctx)
	if err != nil {
		return err
	}

	msg := &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"type":    evt.Type,
			"user_id": evt.UserID,
		},
	}
	serverID, err := topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return err
	}
	logger.GetLogger().WithField("server_id", serverID).WithField("event", evt.Type).Info("Publication event published")
	return nil
}

// resolveTopic creates the topic on first use if it does not exist yet.
func (p *PublicationEvents) resolveTopic(ctx context.Context) (*pubsub.Topic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.topic != nil {
		return p.topic, nil
	}

	topic := p.client.Topic(p.topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.GetLogger().WithField("topic", p.topicID).Info("Topic doesn't exist - creating it")
		if topic, err = p.client.CreateTopic(ctx, p.topicID); err != nil {
			return nil, err
		}
	}
	p.topic = topic
	return topic, nil
}

// Stop flushes pending publishes.
func (p *PublicationEvents) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.topic != nil {
		p.topic.Stop()
	}
}
