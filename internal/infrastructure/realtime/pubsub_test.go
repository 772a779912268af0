package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"grota_financiamento/internal/domain/entities"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func newFakeClient(t *testing.T) (*pubsub.Client, *pstest.Server) {
	t.Helper()
	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	client, err := NewClient(context.Background(), "grota-test", "", option.WithGRPCConn(conn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func TestNewClient_RequiresProject(t *testing.T) {
	_, err := NewClient(context.Background(), "", "")
	assert.Error(t, err)
}

func TestPublisher_PublishesJSONWithAttributes(t *testing.T) {
	client, srv := newFakeClient(t)
	ctx := context.Background()

	topic, err := EnsureTopic(ctx, client, "proposals")
	require.NoError(t, err)
	again, err := EnsureTopic(ctx, client, "proposals")
	require.NoError(t, err)
	assert.Equal(t, topic.ID(), again.ID())

	pub := NewPublisher(topic)
	defer pub.Stop()

	ev := entities.RealtimeEvent{
		Name:       entities.RealtimeProposalStatusUpdated,
		Source:     "api-1",
		ProposalID: 42,
		EmittedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, pub.Publish(ctx, ev))

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "PROPOSAL_STATUS_UPDATED", msgs[0].Attributes["name"])
	assert.Equal(t, "api-1", msgs[0].Attributes["source"])

	var got entities.RealtimeEvent
	require.NoError(t, json.Unmarshal(msgs[0].Data, &got))
	assert.Equal(t, int64(42), got.ProposalID)
	assert.Equal(t, entities.RealtimeProposalStatusUpdated, got.Name)
}

func TestEnsureSubscription(t *testing.T) {
	client, _ := newFakeClient(t)
	ctx := context.Background()

	topic, err := EnsureTopic(ctx, client, "proposals")
	require.NoError(t, err)

	sub, err := EnsureSubscription(ctx, client, "proposals-api", topic)
	require.NoError(t, err)
	assert.Equal(t, "proposals-api", sub.ID())

	_, err = EnsureSubscription(ctx, client, "proposals-api", topic)
	require.NoError(t, err)

	_, err = EnsureSubscription(ctx, client, "", topic)
	assert.Error(t, err)
}

type fakeApplier struct {
	calls []entities.Proposal
	err   error
}

func (f *fakeApplier) ApplyRemoteSnapshot(_ context.Context, p entities.Proposal, _ string) (bool, error) {
	f.calls = append(f.calls, p)
	if f.err != nil {
		return false, f.err
	}
	return true, nil
}

func encode(t *testing.T, ev entities.RealtimeEvent) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func TestSubscriber_Process(t *testing.T) {
	ctx := context.Background()
	snapshot := &entities.Proposal{ID: 7, Status: entities.ProposalStatusApproved, UpdatedAt: time.Now().UTC()}

	t.Run("applies snapshots from other instances", func(t *testing.T) {
		applier := &fakeApplier{}
		s := NewSubscriber(nil, "api-1", applier)
		err := s.process(ctx, encode(t, entities.RealtimeEvent{Name: entities.RealtimeProposalStatusUpdated, Source: "api-2", Proposal: snapshot}))
		require.NoError(t, err)
		require.Len(t, applier.calls, 1)
		assert.Equal(t, int64(7), applier.calls[0].ID)
	})

	t.Run("drops own echoes", func(t *testing.T) {
		applier := &fakeApplier{}
		s := NewSubscriber(nil, "api-1", applier)
		require.NoError(t, s.process(ctx, encode(t, entities.RealtimeEvent{Name: entities.RealtimeProposalCreated, Source: "api-1", Proposal: snapshot})))
		assert.Empty(t, applier.calls)
	})

	t.Run("ignores events without a snapshot", func(t *testing.T) {
		applier := &fakeApplier{}
		s := NewSubscriber(nil, "api-1", applier)
		require.NoError(t, s.process(ctx, encode(t, entities.RealtimeEvent{Name: entities.RealtimeProposalsRefreshRequest, Source: "api-2"})))
		require.NoError(t, s.process(ctx, encode(t, entities.RealtimeEvent{Name: entities.RealtimeProposalEventAppended, Source: "api-2"})))
		assert.Empty(t, applier.calls)
	})

	t.Run("applies note and assignment snapshots", func(t *testing.T) {
		applier := &fakeApplier{}
		s := NewSubscriber(nil, "api-1", applier)
		noted := *snapshot
		noted.Notes = "cliente enviou comprovante"
		require.NoError(t, s.process(ctx, encode(t, entities.RealtimeEvent{Name: entities.RealtimeProposalEventAppended, Source: "api-2", Proposal: &noted})))
		require.Len(t, applier.calls, 1)
		assert.Equal(t, "cliente enviou comprovante", applier.calls[0].Notes)
	})

	t.Run("acks garbage", func(t *testing.T) {
		s := NewSubscriber(nil, "api-1", &fakeApplier{})
		assert.NoError(t, s.process(ctx, []byte("not json")))
	})

	t.Run("acks invalid snapshots", func(t *testing.T) {
		s := NewSubscriber(nil, "api-1", &fakeApplier{err: &entities.FieldError{Field: "updated_at", Reason: "required"}})
		assert.NoError(t, s.process(ctx, encode(t, entities.RealtimeEvent{Name: entities.RealtimeProposalCreated, Source: "api-2", Proposal: snapshot})))
	})

	t.Run("redelivers on storage errors", func(t *testing.T) {
		s := NewSubscriber(nil, "api-1", &fakeApplier{err: errors.New("db down")})
		assert.Error(t, s.process(ctx, encode(t, entities.RealtimeEvent{Name: entities.RealtimeProposalCreated, Source: "api-2", Proposal: snapshot})))
	})
}

type chanApplier struct {
	got chan entities.Proposal
}

func (c chanApplier) ApplyRemoteSnapshot(_ context.Context, p entities.Proposal, _ string) (bool, error) {
	c.got <- p
	return true, nil
}

func TestSubscriber_RunReceivesEventAppendedSnapshot(t *testing.T) {
	client, _ := newFakeClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	topic, err := EnsureTopic(ctx, client, "proposals")
	require.NoError(t, err)
	sub, err := EnsureSubscription(ctx, client, "proposals-api-1", topic)
	require.NoError(t, err)

	pub := NewPublisher(topic)
	defer pub.Stop()
	dealer := "dealer-9"
	require.NoError(t, pub.Publish(ctx, entities.RealtimeEvent{
		Name:       entities.RealtimeProposalEventAppended,
		Source:     "api-2",
		ProposalID: 7,
		Proposal:   &entities.Proposal{ID: 7, Status: entities.ProposalStatusPending, DealerID: &dealer, UpdatedAt: time.Now().UTC()},
	}))

	applier := chanApplier{got: make(chan entities.Proposal, 1)}
	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- NewSubscriber(sub, "api-1", applier).Run(runCtx) }()

	select {
	case p := <-applier.got:
		assert.Equal(t, int64(7), p.ID)
		require.NotNil(t, p.DealerID)
		assert.Equal(t, "dealer-9", *p.DealerID)
	case <-ctx.Done():
		t.Fatal("snapshot was not delivered")
	}
	stop()
	require.NoError(t, <-done)
}
