package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"goldconnect/api/internal/service"
	"goldconnect/api/internal/sync"
)

const activityMaxLen = 10000

// Scheduler runs the periodic maintenance work: an hourly hub
// reconcile (covers a missed change signal) and a daily trim of the
// activity journal. Presence records are deliberately never expired.
type Scheduler struct {
	cron  *cron.Cron
	hub   *sync.Hub
	cache *redis.Client
	log   zerolog.Logger
}

func NewScheduler(hub *sync.Hub, cache *redis.Client, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		hub:   hub,
		cache: cache,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 0 * * * *", s.reconcile); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 0 * * *", s.trimActivity); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for in-flight jobs to finish, up to a bound.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.hub.Refresh(ctx)
	s.log.Debug().Msg("hub reconcile done")
}

func (s *Scheduler) trimActivity() {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.cache.XTrimMaxLen(ctx, service.ActivityStream, activityMaxLen).Err(); err != nil {
		s.log.Error().Err(err).Msg("trim activity stream failed")
	}
}
