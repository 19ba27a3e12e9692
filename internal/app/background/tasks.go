package background

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const defaultProbeInterval = 10 * time.Second

type Pinger interface {
	PingContext(ctx context.Context) error
}

type ServingSetter interface {
	SetServing(serving bool)
}

// BackgroundTasks keeps the gRPC health status in line with database
// reachability.
type BackgroundTasks struct {
	DB       Pinger
	Health   ServingSetter
	Interval time.Duration
}

func NewBackgroundTasks(db Pinger, health ServingSetter) *BackgroundTasks {
	return &BackgroundTasks{
		DB:       db,
		Health:   health,
		Interval: defaultProbeInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startHealthProbe(ctx)
}

func (bt *BackgroundTasks) startHealthProbe(ctx context.Context) {
	bt.probe(ctx)

	ticker := time.NewTicker(bt.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			bt.probe(ctx)
		}
	}
}

func (bt *BackgroundTasks) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, bt.Interval)
	defer cancel()

	if err := bt.DB.PingContext(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.WithError(err).Warn("database ping failed")
		bt.Health.SetServing(false)
		return
	}
	bt.Health.SetServing(true)
}
