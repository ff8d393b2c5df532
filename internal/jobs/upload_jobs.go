package jobs

import (
	"context"

	"agrirent-backend/internal/logger"
)

// SweepOrphanUploads deletes stored images that no equipment row references
// and that are older than the grace period. The grace period covers uploads
// whose equipment insert is still in flight.
func (jr *JobRunner) SweepOrphanUploads() {
	jr.runWithRecovery("SweepOrphanUploads", func() {
		removed, err := jr.sweepOrphanUploads(context.Background())
		if err != nil {
			logger.Error("Failed to sweep orphan uploads", "error", err)
			return
		}
		logger.Info("Swept orphan uploads", "count", removed)
	})
}

func (jr *JobRunner) sweepOrphanUploads(ctx context.Context) (int, error) {
	urls, err := jr.equipment.ListImageURLs(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if key, ok := jr.store.KeyFromURL(u); ok {
			referenced[key] = struct{}{}
		}
	}

	objects, err := jr.store.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := jr.now().Add(-jr.orphanGrace)
	removed := 0
	for _, obj := range objects {
		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if obj.ModTime.After(cutoff) {
			continue
		}
		if err := jr.store.Delete(ctx, obj.Key); err != nil {
			logger.Warn("Failed to delete orphan upload", "key", obj.Key, "error", err)
			continue
		}
		logger.Debug("Deleted orphan upload", "key", obj.Key, "size", obj.Size, "modified", obj.ModTime)
		removed++
	}
	return removed, nil
}
