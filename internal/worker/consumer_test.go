package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"pet-adoption/internal/ports/notify"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type ackRecorder struct {
	mu      sync.Mutex
	acks    []uint64
	nacks   []uint64
	requeue []bool
}

func (a *ackRecorder) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks = append(a.acks, tag)
	return nil
}

func (a *ackRecorder) Nack(tag uint64, multiple, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks = append(a.nacks, tag)
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error { return nil }

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.PasswordResetMessage
	fail bool
}

func (f *fakeNotifier) PasswordReset(ctx context.Context, msg notify.PasswordResetMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func delivery(t *testing.T, ack amqp.Acknowledger, tag uint64, key string, v any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: tag, RoutingKey: key, Body: body}
}

func runConsume(t *testing.T, c *Consumer, deliveries ...amqp.Delivery) {
	t.Helper()

	msgs := make(chan amqp.Delivery, len(deliveries))
	for _, d := range deliveries {
		msgs <- d
	}
	close(msgs)

	done := make(chan error, 1)
	go func() { done <- c.Consume(context.Background(), msgs) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not return after channel close")
	}
}

func TestConsumer_PasswordReset_AcksAfterSend(t *testing.T) {
	ack := &ackRecorder{}
	n := &fakeNotifier{}
	c := NewConsumer(Config{}, n, nil)

	msg := notify.PasswordResetMessage{Email: "ana@example.com", ResetURL: "http://x/reset", ExpiresInMinutes: 60}
	runConsume(t, c, delivery(t, ack, 1, notify.RKPasswordReset, msg))

	require.Len(t, n.sent, 1)
	assert.Equal(t, msg, n.sent[0])
	assert.Equal(t, []uint64{1}, ack.acks)
	assert.Empty(t, ack.nacks)
}

func TestConsumer_NotifierError_NacksWithRequeue(t *testing.T) {
	ack := &ackRecorder{}
	c := NewConsumer(Config{}, &fakeNotifier{fail: true}, nil)

	runConsume(t, c, delivery(t, ack, 7, notify.RKPasswordReset, notify.PasswordResetMessage{Email: "a@b.c"}))

	assert.Equal(t, []uint64{7}, ack.nacks)
	assert.Equal(t, []bool{true}, ack.requeue)
	assert.Empty(t, ack.acks)
}

func TestConsumer_UndecodableBody_IsAckedNotRequeued(t *testing.T) {
	ack := &ackRecorder{}
	n := &fakeNotifier{}
	c := NewConsumer(Config{}, n, nil)

	bad := amqp.Delivery{Acknowledger: ack, DeliveryTag: 9, RoutingKey: notify.RKPasswordReset, Body: []byte(`{"email":`)}
	runConsume(t, c, bad)

	assert.Equal(t, []uint64{9}, ack.acks)
	assert.Empty(t, ack.nacks)
	assert.Empty(t, n.sent)
}

func TestConsumer_UnknownKey_IsAcked(t *testing.T) {
	ack := &ackRecorder{}
	n := &fakeNotifier{}
	c := NewConsumer(Config{}, n, nil)

	runConsume(t, c, delivery(t, ack, 3, "pets.created", map[string]string{"id": "x"}))

	assert.Equal(t, []uint64{3}, ack.acks)
	assert.Empty(t, n.sent)
}

func TestConsumer_StopsOnContextCancel(t *testing.T) {
	c := NewConsumer(Config{}, &fakeNotifier{}, nil)
	msgs := make(chan amqp.Delivery)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Consume(ctx, msgs) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Consume did not stop on cancel")
	}
}
