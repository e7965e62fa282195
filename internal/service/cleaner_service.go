package service

import (
	"context"
	"fmt"
	"time"

	"chat-reactions-be/internal/pkg/logger"
	"chat-reactions-be/internal/repository/unitofwork"
	"chat-reactions-be/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const cleanerModule = "CLEANER"

type CleanupReport struct {
	ReactionsDeleted int64
	RepliesDeleted   int64
	RepliesDetached  int64
}

// ICleanerService prunes rows that point at messages the chat daemon has
// deleted. It matters where the foreign key cascades are missing.
type ICleanerService interface {
	RunOnce(ctx context.Context) (*CleanupReport, error)
	Start(schedule string) error
	Stop()
}

type cleanerService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	metrics    *metrics.Metrics
	cron       *cron.Cron
}

func NewCleanerService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger, m *metrics.Metrics) ICleanerService {
	return &cleanerService{
		uowFactory: uowFactory,
		logger:     log,
		metrics:    m,
	}
}

func (s *cleanerService) RunOnce(ctx context.Context) (*CleanupReport, error) {
	report := &CleanupReport{}
	uow := s.uowFactory.NewUnitOfWork(ctx)

	err := uow.Run(ctx, func(tx unitofwork.UnitOfWork) error {
		var err error
		if report.ReactionsDeleted, err = tx.ReactionRepository().DeleteOrphans(ctx); err != nil {
			return fmt.Errorf("prune reactions: %w", err)
		}
		if report.RepliesDeleted, err = tx.ReplyRepository().DeleteOrphans(ctx); err != nil {
			return fmt.Errorf("prune replies: %w", err)
		}
		if report.RepliesDetached, err = tx.ReplyRepository().DetachMissingParents(ctx); err != nil {
			return fmt.Errorf("detach replies: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.OrphansPruned.WithLabelValues("chatd_room_message_reaction").Add(float64(report.ReactionsDeleted))
		s.metrics.OrphansPruned.WithLabelValues("chatd_room_message_reply").Add(float64(report.RepliesDeleted + report.RepliesDetached))
	}
	return report, nil
}

func (s *cleanerService) Start(schedule string) error {
	if schedule == "" {
		s.logger.Info(cleanerModule, "Cleanup schedule empty, cleaner disabled", nil)
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		report, err := s.RunOnce(ctx)
		if err != nil {
			s.logger.Error(cleanerModule, "Cleanup run failed", map[string]interface{}{"error": err})
			return
		}
		s.logger.Info(cleanerModule, "Cleanup run finished", map[string]interface{}{
			"reactions_deleted": report.ReactionsDeleted,
			"replies_deleted":   report.RepliesDeleted,
			"replies_detached":  report.RepliesDetached,
		})
	})
	if err != nil {
		return fmt.Errorf("invalid cleanup schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	return nil
}

func (s *cleanerService) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
