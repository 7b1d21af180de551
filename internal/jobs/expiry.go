package jobs

import (
	"context"
	"time"

	overdraftuc "corebanking-review/internal/usecase/overdraft"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ExpirySweep closes overdraft facilities whose validity window lapsed.
// It runs on the configured cron schedule, once per business day.
type ExpirySweep struct {
	overdrafts *overdraftuc.Usecase
	log        *logrus.Logger
	cron       *cron.Cron
}

func NewExpirySweep(overdrafts *overdraftuc.Usecase, log *logrus.Logger) *ExpirySweep {
	return &ExpirySweep{
		overdrafts: overdrafts,
		log:        log,
		cron:       cron.New(),
	}
}

// Start registers the sweep and starts the scheduler.
func (s *ExpirySweep) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return err
	}
	s.cron.Start()
	s.log.WithField("schedule", schedule).Info("overdraft expiry sweep scheduled")
	return nil
}

func (s *ExpirySweep) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *ExpirySweep) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	closed, err := s.overdrafts.CloseExpired(ctx)
	if err != nil {
		s.log.WithError(err).Error("overdraft expiry sweep failed")
		return
	}
	if closed > 0 {
		s.log.WithField("closed", closed).Info("overdraft expiry sweep finished")
	}
}
