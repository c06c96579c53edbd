package events

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/domain"
)

type publisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
	Close() error
}

type recorder interface {
	OrderEvent(t domain.OrderEventType, err error)
}

// Instrumented считает результат каждой публикации.
type Instrumented struct {
	next publisher
	rec  recorder
}

func NewInstrumented(next publisher, rec recorder) *Instrumented {
	return &Instrumented{next: next, rec: rec}
}

func (i *Instrumented) Publish(ctx context.Context, event domain.OrderEvent) error {
	err := i.next.Publish(ctx, event)
	i.rec.OrderEvent(event.Type, err)
	return err
}

func (i *Instrumented) Close() error {
	return i.next.Close()
}
