// Package worker фоновые задачи сервиса.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout      = 5 * time.Second
	defaultBatch          uint = 50
)

// PaymentExpirer переводит в FAILED платежи, висящие в PENDING дольше ttl.
type PaymentExpirer struct {
	svs      Expirer
	rec      Recorder
	l        *logrus.Entry
	ttl      time.Duration
	interval time.Duration
	batch    uint
	now      func() time.Time
}

// NewPaymentExpirer создает обработчик. ttl == 0 отключает его, Run сразу вернется.
func NewPaymentExpirer(svs Expirer, rec Recorder, ttl, interval time.Duration, l logrus.FieldLogger) *PaymentExpirer {
	return &PaymentExpirer{
		svs:      svs,
		rec:      rec,
		l:        l.WithFields(logrus.Fields{"component": "worker", "module": "payment_expirer"}),
		ttl:      ttl,
		interval: interval,
		batch:    defaultBatch,
		now:      time.Now,
	}
}

// SetBatch устанавливает кол-во платежей, обрабатываемых за одну итерацию.
func (p *PaymentExpirer) SetBatch(batch uint) *PaymentExpirer {
	if batch > 0 {
		p.batch = batch
	}
	return p
}

// Run работает до отмены контекста. Если итерация обработала полный батч, следующая запускается без паузы.
func (p *PaymentExpirer) Run(ctx context.Context) {
	if p.ttl <= 0 || p.interval <= 0 {
		p.l.Info("Disabled")
		return
	}
	p.l.WithFields(logrus.Fields{
		"ttl":      p.ttl,
		"interval": p.interval,
		"batch":    p.batch,
	}).Info("Starting")

	timer := time.NewTimer(jitterDuration(p.interval))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-timer.C:
			wait := jitterDuration(p.interval)
			n, err := p.process(ctx)
			if err != nil {
				p.l.WithError(err).Error("process error")
			} else if uint(n) >= p.batch { //nolint:gosec
				wait = 0
			}
			timer.Reset(wait)
		}
	}
}

func (p *PaymentExpirer) process(ctx context.Context) (int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	n, err := p.svs.ExpireStale(reqCtx, p.now().Add(-p.ttl), p.batch)
	if err != nil {
		return 0, fmt.Errorf("process: %w", err)
	}
	if n > 0 {
		p.rec.PaymentsExpired(n)
		p.l.WithField("count", n).Info("pending payments expired")
	}
	return n, nil
}
