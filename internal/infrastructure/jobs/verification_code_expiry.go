package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"trackify.backend/pkg/logger"
)

type overdueCodeExpirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// VerificationCodeExpiryJob flags verification codes whose expiring date has passed
type VerificationCodeExpiryJob struct {
	repo     overdueCodeExpirer
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
}

func NewVerificationCodeExpiryJob(repo overdueCodeExpirer, interval time.Duration) *VerificationCodeExpiryJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &VerificationCodeExpiryJob{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (j *VerificationCodeExpiryJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting verification code expiry job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Verification code expiry job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Verification code expiry job stopped")
			return
		case <-ticker.C:
			j.expireOverdueCodes(ctx)
		}
	}
}

func (j *VerificationCodeExpiryJob) Stop() {
	close(j.stop)
}

func (j *VerificationCodeExpiryJob) expireOverdueCodes(ctx context.Context) {
	n, err := j.repo.ExpireOverdue(ctx, j.now())
	if err != nil {
		logger.Error(ctx, "Error expiring verification codes", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info(ctx, "Expired verification codes", zap.Int64("count", n))
	}
}
