package service

import (
	"context"

	"ai-querychat-be/internal/pkg/logger"
	"ai-querychat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IActivityPublisher is fire and forget. Failures are logged, never returned,
// so a broken bus cannot fail a request.
type IActivityPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type activityPublisher struct {
	publisher message.Publisher
	topic     string
	logger    logger.ILogger
}

func NewActivityPublisher(publisher message.Publisher, topic string, log logger.ILogger) IActivityPublisher {
	return &activityPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    log,
	}
}

func (p *activityPublisher) Publish(ctx context.Context, event events.Event) {
	payload, err := events.Marshal(event)
	if err != nil {
		p.logger.Error("ActivityPublisher", "Failed to marshal event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", event.EventType())
	if err := p.publisher.Publish(p.topic, msg); err != nil {
		p.logger.Error("ActivityPublisher", "Failed to publish event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}
}

// EventRelay forwards activity outside the process, e.g. to NATS.
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

type IActivityConsumer interface {
	Consume(ctx context.Context) error
}

type activityConsumer struct {
	subscriber message.Subscriber
	topic      string
	relay      EventRelay
	logger     logger.ILogger
}

// NewActivityConsumer logs every activity event and hands it to relay when
// relay is not nil.
func NewActivityConsumer(subscriber message.Subscriber, topic string, relay EventRelay, log logger.ILogger) IActivityConsumer {
	return &activityConsumer{
		subscriber: subscriber,
		topic:      topic,
		relay:      relay,
		logger:     log,
	}
}

func (c *activityConsumer) Consume(ctx context.Context) error {
	messages, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (c *activityConsumer) processMessage(ctx context.Context, msg *message.Message) {
	// Always ack: activity is informational and must not be redelivered forever.
	defer msg.Ack()

	event, err := events.Unmarshal(msg.Payload)
	if err != nil {
		c.logger.Warn("ActivityConsumer", "Dropping malformed event", map[string]interface{}{"uuid": msg.UUID, "error": err.Error()})
		return
	}

	c.logger.Info("Activity", event.EventType(), event.Payload())

	if c.relay == nil {
		return
	}
	if err := c.relay.Publish(ctx, event); err != nil {
		c.logger.Warn("ActivityConsumer", "Failed to relay event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}
}
