// Package scheduler runs periodic admission maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"school-admissions/backend/internal/dto"
)

const jobTimeout = 10 * time.Minute

// Migrator materializes students for approved applications
type Migrator interface {
	MigrateApproved(ctx context.Context) (*dto.MigrateApprovedResponse, error)
}

// Scheduler cron with seconds precision
type Scheduler struct {
	cron     *cron.Cron
	migrator Migrator
	logger   *zap.Logger
}

func New(migrator Migrator, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
		),
		migrator: migrator,
		logger:   logger,
	}
}

// Register adds the migrate-approved sweep. An empty spec disables it and
// returns false.
func (s *Scheduler) Register(spec string) (bool, error) {
	if spec == "" {
		s.logger.Info("maintenance sweep disabled")
		return false, nil
	}
	if _, err := s.cron.AddFunc(spec, s.runMigrateApproved); err != nil {
		return false, fmt.Errorf("schedule migrate-approved %q: %w", spec, err)
	}
	s.logger.Info("maintenance sweep scheduled", zap.String("spec", spec))
	return true, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runMigrateApproved() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	report, err := s.migrator.MigrateApproved(ctx)
	if err != nil {
		s.logger.Error("migrate-approved job failed", zap.Error(err))
		return
	}
	s.logger.Info("migrate-approved job finished",
		zap.Int("scanned", report.Scanned),
		zap.Int("created", report.Created),
		zap.Int("failed", report.Failed),
		zap.Duration("took", time.Since(start)),
	)
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct{ l *zap.Logger }

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Infow(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
