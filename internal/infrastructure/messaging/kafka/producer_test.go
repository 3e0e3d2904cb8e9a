package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/MamaFati/farmDirect/internal/domain/order"
	"github.com/MamaFati/farmDirect/pkg/logger"
)

// MockLogger là mock cho logger.Logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields ...logger.Field) { m.Called(msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logger.Field) { m.Called(msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logger.Field) { m.Called(msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logger.Field) { m.Called(msg, fields) }
func (m *MockLogger) Fatal(msg string, fields ...logger.Field) { m.Called(msg, fields) }

func (m *MockLogger) WithContext(ctx context.Context) logger.Logger {
	m.Called(ctx)
	return m
}

func (m *MockLogger) WithFields(fields ...logger.Field) logger.Logger {
	m.Called(fields)
	return m
}

func (m *MockLogger) Sync() error {
	args := m.Called()
	return args.Error(0)
}

type fakeClient struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeClient) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeClient) Close() { f.closed = true }

type fakeCodec struct {
	payload []byte
	err     error
}

func (f fakeCodec) Encode(order.Placed) ([]byte, error) { return f.payload, f.err }

func TestOrderProducer_PublishOrderPlaced(t *testing.T) {
	client := &fakeClient{}
	producer := &OrderProducer{client: client, codec: fakeCodec{payload: []byte{1, 2, 3}}, topic: "orders", logger: logger.NewNop()}
	ev := order.Placed{OrderID: uuid.New(), PlacedAt: time.Now()}

	err := producer.PublishOrderPlaced(context.Background(), ev)

	require.NoError(t, err)
	require.Len(t, client.records, 1)
	rec := client.records[0]
	assert.Equal(t, "orders", rec.Topic)
	assert.Equal(t, ev.OrderID.String(), string(rec.Key))
	assert.Equal(t, []byte{1, 2, 3}, rec.Value)
	assert.Equal(t, ContentTypeAvro, string(rec.Headers[0].Value))
}

func TestOrderProducer_PublishOrderPlaced_EmptyPayload(t *testing.T) {
	client := &fakeClient{}
	producer := &OrderProducer{client: client, codec: fakeCodec{}, topic: "orders", logger: logger.NewNop()}

	err := producer.PublishOrderPlaced(context.Background(), order.Placed{})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "payload is empty")
	assert.Empty(t, client.records)
}

func TestOrderProducer_PublishOrderPlaced_BrokerError(t *testing.T) {
	mockLog := new(MockLogger)
	client := &fakeClient{err: errors.New("not leader")}
	producer := &OrderProducer{client: client, codec: fakeCodec{payload: []byte{1}}, topic: "orders", logger: mockLog}

	mockLog.On("WithContext", mock.Anything)
	mockLog.On("Error", "kafka publish failed", mock.Anything).Once()

	err := producer.PublishOrderPlaced(context.Background(), order.Placed{OrderID: uuid.New()})

	assert.ErrorContains(t, err, "not leader")
	mockLog.AssertExpectations(t)
}

func TestOrderProducer_Close(t *testing.T) {
	mockLog := new(MockLogger)
	client := &fakeClient{}
	producer := &OrderProducer{client: client, topic: "orders", logger: mockLog}

	mockLog.On("Info", "closing kafka producer", mock.Anything).Return()

	producer.Close()

	assert.True(t, client.closed)
	mockLog.AssertExpectations(t)
}
