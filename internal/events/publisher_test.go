package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type fakeChannel struct {
	declared   []string
	published  []amqp091.Publishing
	keys       []string
	publishErr error
	declareErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, _ string, _, _, _, _ bool, _ amqp091.Table) error {
	f.declared = append(f.declared, name)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(
	_ context.Context,
	_, key string,
	_, _ bool,
	msg amqp091.Publishing,
) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

type PublisherTestSuite struct {
	suite.Suite
	l *logrus.Logger
}

func TestPublisherTestSuite(t *testing.T) {
	suite.Run(t, new(PublisherTestSuite))
}

func (s *PublisherTestSuite) SetupTest() {
	s.l = logrus.New()
	s.l.SetOutput(io.Discard)
}

func (s *PublisherTestSuite) event() domain.OrderEvent {
	return domain.NewOrderEvent(domain.OrderEventPaid, &domain.Payment{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: domain.PaymentStatusPaid,
		Amount: decimal.RequireFromString("24.98"),
		Total:  3,
	})
}

func (s *PublisherTestSuite) TestPublish() {
	ch := new(fakeChannel)
	p, err := newPublisher(ch, s.l)
	s.Require().NoError(err)
	s.Equal([]string{OrdersExchange}, ch.declared)

	event := s.event()
	s.Require().NoError(p.Publish(context.Background(), event))

	s.Require().Len(ch.published, 1)
	s.Equal("order.paid", ch.keys[0])
	s.Equal(amqp091.Persistent, ch.published[0].DeliveryMode)
	s.Equal(event.PaymentID.String(), ch.published[0].MessageId)

	var body map[string]any
	s.Require().NoError(json.Unmarshal(ch.published[0].Body, &body))
	s.Equal("PAID", body["status"])
	s.Equal("24.98", body["amount"])

	s.Require().NoError(p.Close())
	s.True(ch.closed)
}

func (s *PublisherTestSuite) TestPublishError() {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := newPublisher(ch, s.l)
	s.Require().NoError(err)

	s.ErrorContains(p.Publish(context.Background(), s.event()), "channel closed")
}

func (s *PublisherTestSuite) TestDeclareError() {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newPublisher(ch, s.l)
	s.Require().Error(err)
	s.True(ch.closed)
}

func (s *PublisherTestSuite) TestNoop() {
	s.NoError(NewNoopPublisher(s.l).Publish(context.Background(), s.event()))
}

type eventRecorder struct {
	results map[domain.OrderEventType][]error
}

func (r *eventRecorder) OrderEvent(t domain.OrderEventType, err error) {
	if r.results == nil {
		r.results = make(map[domain.OrderEventType][]error)
	}
	r.results[t] = append(r.results[t], err)
}

func (s *PublisherTestSuite) TestInstrumented() {
	ch := new(fakeChannel)
	p, err := newPublisher(ch, s.l)
	s.Require().NoError(err)

	rec := new(eventRecorder)
	inst := NewInstrumented(p, rec)

	s.Require().NoError(inst.Publish(context.Background(), s.event()))

	ch.publishErr = errors.New("channel closed")
	s.Error(inst.Publish(context.Background(), s.event()))

	s.Require().Len(rec.results[domain.OrderEventPaid], 2)
	s.NoError(rec.results[domain.OrderEventPaid][0])
	s.Error(rec.results[domain.OrderEventPaid][1])

	s.NoError(inst.Close())
	s.True(ch.closed)
}
