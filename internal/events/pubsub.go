package events

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/go-faster/errors"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// PubSub publishes events to a Google Cloud Pub/Sub topic.
type PubSub struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// NewPubSub connects to projectID and gets or creates topicID.
func NewPubSub(ctx context.Context, projectID, topicID string, opts ...option.ClientOption) (*PubSub, error) {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create pubsub client")
	}

	topic, err := getOrCreateTopic(ctx, client, topicID)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &PubSub{client: client, topic: topic}, nil
}

// Publish blocks until the server acknowledges the message or ctx is done.
func (p *PubSub) Publish(ctx context.Context, e Event) error {
	data, err := e.MarshalJSON()
	if err != nil {
		return err
	}

	res := p.topic.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"type": e.Type},
	})
	if _, err := res.Get(ctx); err != nil {
		return errors.Wrapf(err, "publish %s", e.Type)
	}
	return nil
}

func (p *PubSub) Close() error {
	p.topic.Stop()
	return p.client.Close()
}

// Subscribe receives events from topicID through subID until ctx is done. Messages fn
// fails on are nacked for redelivery; undecodable messages are acked and dropped.
func Subscribe(
	ctx context.Context,
	projectID string,
	topicID string,
	subID string,
	fn func(ctx context.Context, e Event) error,
	opts ...option.ClientOption,
) error {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return errors.Wrap(err, "create pubsub client")
	}
	defer client.Close()

	topic, err := getOrCreateTopic(ctx, client, topicID)
	if err != nil {
		return err
	}

	sub, err := getOrCreateSub(ctx, client, subID, &pubsub.SubscriptionConfig{
		Topic: topic,
	})
	if err != nil {
		return err
	}

	log.Info().Str("topic", topicID).Str("subscription", subID).Msg("listening for events")
	return sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		var e Event
		if err := e.UnmarshalJSON(msg.Data); err != nil {
			log.Error().Err(err).Str("message_id", msg.ID).Msg("dropping undecodable event")
			msg.Ack()
			return
		}
		if err := fn(ctx, e); err != nil {
			log.Error().Err(err).Str("type", e.Type).Msg("event processing failed")
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

// getOrCreateTopic gets a topic or creates it if it doesn't exist.
func getOrCreateTopic(ctx context.Context, client *pubsub.Client, topicID string) (*pubsub.Topic, error) {
	topic := client.Topic(topicID)
	ok, err := topic.Exists(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "check topic %q", topicID)
	}
	if !ok {
		topic, err = client.CreateTopic(ctx, topicID)
		if err != nil {
			return nil, errors.Wrapf(err, "create topic %q", topicID)
		}
	}
	return topic, nil
}

// getOrCreateSub gets a subscription or creates it if it doesn't exist.
func getOrCreateSub(ctx context.Context, client *pubsub.Client, subID string, cfg *pubsub.SubscriptionConfig) (*pubsub.Subscription, error) {
	sub := client.Subscription(subID)
	ok, err := sub.Exists(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "check subscription %q", subID)
	}
	if !ok {
		sub, err = client.CreateSubscription(ctx, subID, *cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "create subscription %q", subID)
		}
	}
	return sub, nil
}
