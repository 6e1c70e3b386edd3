package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/vanshwebstep/screeningstar-admin-api/internal/models"
	"github.com/vanshwebstep/screeningstar-admin-api/pkg/jobs"
)

type auditRepository interface {
	CreateActivityLog(ctx context.Context, log *models.ActivityLog) error
	CreateLoginLog(ctx context.Context, log *models.LoginLog) error
}

type auditDropRecorder interface {
	RecordAuditDrop()
}

// Job types dispatched to the audit queue.
const (
	jobTypeActivityLog = "activity_log"
	jobTypeLoginLog    = "login_log"
)

// AuditService records activity and login logs asynchronously. Writes go
// through a bounded worker queue so a slow audit table never stalls the
// request path; a dropped log entry is logged but never surfaces as a
// request error.
type AuditService struct {
	repo    auditRepository
	queue   *jobs.Queue
	logger  *zap.Logger
	metrics auditDropRecorder
	seq     atomic.Int64
}

// NewAuditService constructs an AuditService with its backing worker queue.
// metrics may be nil.
func NewAuditService(repo auditRepository, metrics auditDropRecorder, logger *zap.Logger, cfg jobs.QueueConfig) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{repo: repo, metrics: metrics, logger: logger}
	cfg.Logger = logger
	s.queue = jobs.NewQueue("audit", s.handle, cfg)
	return s
}

// Start launches the queue workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the queue and stops the workers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// RecordActivity enqueues an activity log write.
func (s *AuditService) RecordActivity(log models.ActivityLog) {
	if err := s.queue.Enqueue(jobs.Job{
		ID:      fmt.Sprintf("activity-%d", s.seq.Add(1)),
		Type:    jobTypeActivityLog,
		Payload: log,
	}); err != nil {
		s.recordDrop()
		s.logger.Warn("dropped activity log", zap.String("module", log.Module), zap.String("action", log.Action), zap.Error(err))
	}
}

// RecordLogin enqueues a login log write.
func (s *AuditService) RecordLogin(log models.LoginLog) {
	if err := s.queue.Enqueue(jobs.Job{
		ID:      fmt.Sprintf("login-%d", s.seq.Add(1)),
		Type:    jobTypeLoginLog,
		Payload: log,
	}); err != nil {
		s.recordDrop()
		s.logger.Warn("dropped login log", zap.Int64("admin_id", log.AdminID), zap.Error(err))
	}
}

func (s *AuditService) recordDrop() {
	if s.metrics != nil {
		s.metrics.RecordAuditDrop()
	}
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	switch job.Type {
	case jobTypeActivityLog:
		log, ok := job.Payload.(models.ActivityLog)
		if !ok {
			return fmt.Errorf("unexpected payload type for %s", job.Type)
		}
		return s.repo.CreateActivityLog(ctx, &log)
	case jobTypeLoginLog:
		log, ok := job.Payload.(models.LoginLog)
		if !ok {
			return fmt.Errorf("unexpected payload type for %s", job.Type)
		}
		return s.repo.CreateLoginLog(ctx, &log)
	default:
		return fmt.Errorf("unknown audit job type %s", job.Type)
	}
}
