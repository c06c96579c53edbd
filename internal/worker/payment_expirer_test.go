package worker

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/fsdevblog/food-delivery/internal/worker/mocks"
	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type PaymentExpirerTestSuite struct {
	suite.Suite
	mockService  *mocks.MockExpirer
	mockRecorder *mocks.MockRecorder
	logger       *logrus.Logger
	now          time.Time
}

func TestPaymentExpirerSuite(t *testing.T) {
	suite.Run(t, new(PaymentExpirerTestSuite))
}

func (s *PaymentExpirerTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.mockService = mocks.NewMockExpirer(ctrl)
	s.mockRecorder = mocks.NewMockRecorder(ctrl)
	s.logger = logrus.New()
	s.logger.SetOutput(io.Discard)
	s.now = time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
}

func (s *PaymentExpirerTestSuite) expirer(ttl, interval time.Duration) *PaymentExpirer {
	p := NewPaymentExpirer(s.mockService, s.mockRecorder, ttl, interval, s.logger)
	p.now = func() time.Time { return s.now }
	return p
}

func (s *PaymentExpirerTestSuite) TestProcess() {
	p := s.expirer(24*time.Hour, time.Minute).SetBatch(20)

	s.mockService.EXPECT().ExpireStale(gomock.Any(), s.now.Add(-24*time.Hour), uint(20)).Return(3, nil)
	s.mockRecorder.EXPECT().PaymentsExpired(3)

	n, err := p.process(context.Background())
	s.Require().NoError(err)
	s.Equal(3, n)
}

func (s *PaymentExpirerTestSuite) TestProcessNothingExpired() {
	p := s.expirer(time.Hour, time.Minute)

	s.mockService.EXPECT().ExpireStale(gomock.Any(), s.now.Add(-time.Hour), defaultBatch).Return(0, nil)

	n, err := p.process(context.Background())
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *PaymentExpirerTestSuite) TestProcessError() {
	p := s.expirer(time.Hour, time.Minute)

	s.mockService.EXPECT().ExpireStale(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))

	_, err := p.process(context.Background())
	s.Error(err)
}

func (s *PaymentExpirerTestSuite) TestRunDisabled() {
	done := make(chan struct{})
	go func() {
		s.expirer(0, time.Minute).Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("disabled expirer must return immediately")
	}
}

func (s *PaymentExpirerTestSuite) TestRunDrainsFullBatch() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := s.expirer(time.Hour, 10*time.Millisecond).SetBatch(2)

	gomock.InOrder(
		s.mockService.EXPECT().ExpireStale(gomock.Any(), gomock.Any(), uint(2)).Return(2, nil),
		s.mockService.EXPECT().ExpireStale(gomock.Any(), gomock.Any(), uint(2)).
			DoAndReturn(func(context.Context, time.Time, uint) (int, error) {
				cancel()
				return 0, nil
			}),
	)
	s.mockRecorder.EXPECT().PaymentsExpired(2)

	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("expirer did not stop")
	}
}

func (s *PaymentExpirerTestSuite) TestJitterRange() {
	for range 100 {
		d := jitterDuration(time.Second)
		s.GreaterOrEqual(d, 900*time.Millisecond)
		s.LessOrEqual(d, 1100*time.Millisecond)
	}
	s.Equal(time.Duration(0), jitterDuration(0))
}
