package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"grota_financiamento/internal/domain/entities"
	"grota_financiamento/internal/infrastructure/logger"
	"grota_financiamento/internal/usecase/interfaces"

	"cloud.google.com/go/pubsub"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// NewClient connects to Pub/Sub with Application Default Credentials unless
// credentialsJSON is given.
func NewClient(ctx context.Context, projectID, credentialsJSON string, opts ...option.ClientOption) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, errors.New("PUBSUB_PROJECT_ID/GOOGLE_CLOUD_PROJECT not set")
	}
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	c, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("pubsub client: %w", err)
	}
	logger.Get().WithField("project_id", projectID).Info("[realtime][pubsub] client ready")
	return c, nil
}

// EnsureTopic returns the topic, creating it when missing.
func EnsureTopic(ctx context.Context, c *pubsub.Client, topicID string) (*pubsub.Topic, error) {
	if topicID == "" {
		return nil, errors.New("topic is required")
	}
	t := c.Topic(topicID)
	ok, err := t.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return t, nil
	}
	t, err = c.CreateTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("create topic %q: %w", topicID, err)
	}
	return t, nil
}

// EnsureSubscription returns the subscription, creating it on topic when missing.
func EnsureSubscription(ctx context.Context, c *pubsub.Client, name string, topic *pubsub.Topic) (*pubsub.Subscription, error) {
	if name == "" {
		return nil, errors.New("subscription name is required")
	}
	sub := c.Subscription(name)
	ok, err := sub.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check subscription exists: %w", err)
	}
	if ok {
		return sub, nil
	}
	sub, err = c.CreateSubscription(ctx, name, pubsub.SubscriptionConfig{
		Topic:       topic,
		AckDeadline: 20 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("create subscription %q: %w", name, err)
	}
	return sub, nil
}

// Publisher sends realtime events as JSON messages. The event name and source
// are copied into message attributes so subscribers can filter without decoding.
type Publisher struct {
	topic *pubsub.Topic
}

var _ interfaces.IRealtimePublisher = (*Publisher)(nil)

func NewPublisher(topic *pubsub.Topic) *Publisher {
	return &Publisher{topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, ev entities.RealtimeEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	res := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"name":   string(ev.Name),
			"source": ev.Source,
		},
	})
	id, err := res.Get(ctx)
	if err != nil {
		return fmt.Errorf("publish %s: %w", ev.Name, err)
	}
	logger.Get().WithFields(logrus.Fields{
		"event":       ev.Name,
		"proposal_id": ev.ProposalID,
		"message_id":  id,
	}).Debug("[realtime][pubsub] published")
	return nil
}

// Stop flushes pending messages.
func (p *Publisher) Stop() {
	p.topic.Stop()
}

// SnapshotApplier is satisfied by the proposal use case.
type SnapshotApplier interface {
	ApplyRemoteSnapshot(ctx context.Context, p entities.Proposal, source string) (bool, error)
}

// Subscriber feeds proposal snapshots published by other instances back into
// the local store.
type Subscriber struct {
	sub     *pubsub.Subscription
	source  string
	applier SnapshotApplier
}

func NewSubscriber(sub *pubsub.Subscription, source string, applier SnapshotApplier) *Subscriber {
	return &Subscriber{sub: sub, source: source, applier: applier}
}

// Run blocks until ctx is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	return s.sub.Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		if err := s.process(ctx, m.Data); err != nil {
			logger.LogError("realtime", "Subscriber.Run", "apply", map[string]any{"message_id": m.ID}, err)
			m.Nack()
			return
		}
		m.Ack()
	})
}

// process returns an error only for failures worth redelivering.
func (s *Subscriber) process(ctx context.Context, data []byte) error {
	var ev entities.RealtimeEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		logger.Get().WithError(err).Warn("[realtime][pubsub] dropping undecodable message")
		return nil
	}
	// Any event carrying a proposal is a snapshot; the updatedAt guard in
	// ApplyRemoteSnapshot keeps stale ones out.
	if ev.Source == s.source || ev.Proposal == nil {
		return nil
	}

	applied, err := s.applier.ApplyRemoteSnapshot(ctx, *ev.Proposal, ev.Source)
	if err != nil {
		if errors.Is(err, entities.ErrValidation) {
			return nil
		}
		return err
	}
	logger.Get().WithFields(logrus.Fields{
		"proposal_id": ev.Proposal.ID,
		"source":      ev.Source,
		"applied":     applied,
	}).Debug("[realtime][pubsub] remote snapshot")
	return nil
}
