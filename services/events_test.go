package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"
)

func TestNoopPublisher(t *testing.T) {
	var p EventPublisher = NoopPublisher{}
	require.NoError(t, p.Publish(context.Background(), Event{Subject: SubjectNoteCreated}))
}

func TestNATSPublisherClosedConnection(t *testing.T) {
	p := &NATSPublisher{}
	err := p.Publish(context.Background(), Event{Subject: SubjectNoteCreated})
	require.ErrorIs(t, err, nats.ErrConnectionClosed)
}

func TestNATSPublisher(t *testing.T) {
	pub, err := NewNATSPublisher(nats.DefaultURL)
	if err != nil {
		t.Skipf("NATS not available: %v", err)
	}
	defer pub.Close()

	sub, err := pub.conn.SubscribeSync(SubjectTenantUpgraded)
	require.NoError(t, err)

	event := Event{
		Subject:    SubjectTenantUpgraded,
		TenantID:   1,
		ActorID:    2,
		Data:       map[string]string{"plan": "pro"},
		OccurredAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, pub.Publish(context.Background(), event))

	msg, err := sub.NextMsg(2 * time.Second)
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	require.Equal(t, event.Subject, got.Subject)
	require.Equal(t, event.TenantID, got.TenantID)
	require.True(t, event.OccurredAt.Equal(got.OccurredAt))
}
