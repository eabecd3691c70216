// Package sink persists crawl results to local files.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Snapshot is the serialized result of one crawl run.
type Snapshot struct {
	RunID     string    `json:"run_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	FetchedAt time.Time `json:"fetched_at"`
	Count     int       `json:"count"`
	Headlines []string  `json:"headlines"`
}

// FileSink writes crawl snapshots to disk as JSON.
type FileSink struct {
	path   string
	now    func() time.Time
	logger *zap.Logger
}

// NewFileSink returns a sink targeting path.
func NewFileSink(path string, logger *zap.Logger) *FileSink {
	return &FileSink{
		path:   path,
		now:    time.Now,
		logger: logger,
	}
}

// Save writes the snapshot, stamping FetchedAt when unset.
func (s *FileSink) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = s.now().UTC()
	}
	snap.Count = len(snap.Headlines)

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create sink dir %s: %w", dir, err)
		}
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.path, err)
	}
	s.logger.Info("snapshot written",
		zap.String("path", s.path),
		zap.Int("headlines", snap.Count),
	)
	return nil
}
