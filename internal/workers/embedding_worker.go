package workers

import (
	"context"
	"strings"
	"time"

	"jobmatch_backend/internal/embedding"
	"jobmatch_backend/internal/logger"
	"jobmatch_backend/internal/repositories"
)

// EmbeddingWorker periodically re-embeds student profiles whose cached
// vector is missing or past its validity window, so interactive requests
// rarely pay the generation cost.
type EmbeddingWorker struct {
	profileRepo repositories.ProfileRepository
	cache       *embedding.CacheManager
	interval    time.Duration
	validity    time.Duration
	batchSize   int
}

func NewEmbeddingWorker(
	profileRepo repositories.ProfileRepository,
	cache *embedding.CacheManager,
	interval, validity time.Duration,
	batchSize int,
) *EmbeddingWorker {
	return &EmbeddingWorker{
		profileRepo: profileRepo,
		cache:       cache,
		interval:    interval,
		validity:    validity,
		batchSize:   batchSize,
	}
}

// Start launches the refresh loop. It returns immediately; the loop
// stops when ctx is cancelled.
func (w *EmbeddingWorker) Start(ctx context.Context) {
	go w.refreshLoop(ctx)
}

func (w *EmbeddingWorker) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("embedding", "stopped", nil)
			return
		case <-ticker.C:
			w.refreshBatch(ctx)
		}
	}
}

func (w *EmbeddingWorker) refreshBatch(ctx context.Context) {
	cutoff := time.Now().Add(-w.validity)
	profiles, err := w.profileRepo.ListProfilesWithStaleEmbeddings(ctx, cutoff, w.batchSize)
	if err != nil {
		logger.WorkerLog("embedding", "list stale profiles", err)
		return
	}
	if len(profiles) == 0 {
		return
	}

	refreshed := 0
	for i := range profiles {
		profile := &profiles[i]
		sourceText := embedding.BuildProfileText(strings.Join(profile.GetSkills(), ", "), profile.ResumeText)
		if sourceText == "" {
			continue
		}
		if vec := w.cache.GetOrRefresh(ctx, profile.ID, sourceText, true); vec != nil {
			refreshed++
		}
	}

	logger.CtxInfo(ctx, "embedding refresh batch complete",
		"worker", "embedding",
		"candidates", len(profiles),
		"refreshed", refreshed,
	)
}
