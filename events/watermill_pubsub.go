package events

import (
	"context"
	"maps"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/pakbaz/todolist/models"
)

// watermillPubSub adapts a Watermill publisher/subscriber pair to the
// models.PubSub contract, keeping the rest of the module transport-agnostic.
type watermillPubSub struct {
	publisher  message.Publisher
	subscriber message.Subscriber
}

// NewWatermillPubSub creates a PubSub adapter for Watermill transports.
func NewWatermillPubSub(publisher message.Publisher, subscriber message.Subscriber) models.PubSub {
	return &watermillPubSub{
		publisher:  publisher,
		subscriber: subscriber,
	}
}

func (w *watermillPubSub) Publish(ctx context.Context, topic string, msg *models.Message) error {
	watermillMsg := message.NewMessage(
		msg.UUID,
		msg.Payload,
	)

	for key, value := range msg.Metadata {
		watermillMsg.Metadata.Set(key, value)
	}

	return w.publisher.Publish(topic, watermillMsg)
}

// Subscribe returns a channel that receives messages from the specified topic.
func (w *watermillPubSub) Subscribe(ctx context.Context, topic string) (<-chan *models.Message, error) {
	watermillCh, err := w.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, err
	}

	domainCh := make(chan *models.Message)

	go func() {
		defer close(domainCh)

		for watermillMsg := range watermillCh {
			metadata := make(map[string]string)
			maps.Copy(metadata, watermillMsg.Metadata)

			domainMsg := &models.Message{
				UUID:     watermillMsg.UUID,
				Payload:  watermillMsg.Payload,
				Metadata: metadata,
			}

			select {
			case domainCh <- domainMsg:
				watermillMsg.Ack()
			case <-ctx.Done():
				watermillMsg.Nack()
				return
			}
		}
	}()

	return domainCh, nil
}

func (w *watermillPubSub) Close() error {
	pubErr := w.publisher.Close()
	subErr := w.subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}

// pubSubWithCleanup releases transport-owned resources, such as connection
// pools, once the underlying publisher and subscriber have closed.
type pubSubWithCleanup struct {
	models.PubSub
	cleanup func() error
}

func (p *pubSubWithCleanup) Close() error {
	err := p.PubSub.Close()
	if cleanupErr := p.cleanup(); cleanupErr != nil && err == nil {
		err = cleanupErr
	}
	return err
}
