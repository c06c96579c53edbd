package worker

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"
)

type Expirer interface {
	ExpireStale(ctx context.Context, before time.Time, limit uint) (int, error)
}

type Recorder interface {
	PaymentsExpired(n int)
}
