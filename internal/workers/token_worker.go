package workers

import (
	"context"
	"time"

	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/repositories"
)

// TokenWorker removes refresh tokens that have passed their expiry, so
// the tokens table does not accumulate rows from abandoned sessions.
type TokenWorker struct {
	userRepo repositories.UserRepository
	interval time.Duration
}

func NewTokenWorker(userRepo repositories.UserRepository, interval time.Duration) *TokenWorker {
	return &TokenWorker{
		userRepo: userRepo,
		interval: interval,
	}
}

// Start launches the cleanup loop. It returns immediately; the loop
// stops when ctx is cancelled.
func (w *TokenWorker) Start(ctx context.Context) {
	go w.cleanupLoop(ctx)
}

func (w *TokenWorker) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("token_cleanup", "stopped", nil)
			return
		case <-ticker.C:
			if err := w.userRepo.CleanExpiredRefreshTokens(ctx); err != nil {
				logger.WorkerLog("token_cleanup", "delete expired tokens", err)
			}
		}
	}
}
