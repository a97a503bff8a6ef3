package mirror

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ipfs-uploader/internal/pool"
	"ipfs-uploader/internal/upload"
)

// Service copies published payloads to the mirror provider in the background.
type Service struct {
	provider Provider
	workers  *pool.WorkerPool
	prefix   string
	logger   *zap.Logger

	mu    sync.RWMutex
	stats Stats
}

// Stats tracks mirror activity.
type Stats struct {
	Queued     int64     `json:"queued"`
	Stored     int64     `json:"stored"`
	Failed     int64     `json:"failed"`
	Dropped    int64     `json:"dropped"`
	TotalBytes int64     `json:"total_bytes"`
	LastKey    string    `json:"last_key,omitempty"`
	LastStored time.Time `json:"last_stored"`
}

// NewService creates a mirror service that runs its jobs on workers.
func NewService(provider Provider, workers *pool.WorkerPool, prefix string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		workers:  workers,
		prefix:   strings.Trim(prefix, "/"),
		logger:   logger.Named("mirror"),
	}
}

// Key returns the archive key of a content hash.
func (s *Service) Key(hash string) string {
	if s.prefix == "" {
		return hash
	}
	return s.prefix + "/" + hash
}

// Hook adapts the service to an orchestrator success hook.
func (s *Service) Hook() upload.SuccessHook {
	return func(req upload.Request, res upload.Result) {
		if _, err := s.Enqueue(req, res); err != nil {
			s.logger.Warn("Mirror job not queued",
				zap.String("hash", res.ContentHash),
				zap.Error(err))
		}
	}
}

// Enqueue schedules an archive copy of the payload and returns the job ID.
func (s *Service) Enqueue(req upload.Request, res upload.Result) (string, error) {
	body, contentType := archiveBody(req, res)
	key := s.Key(res.ContentHash)
	jobID := uuid.New().String()

	err := s.workers.Submit(func(ctx context.Context) error {
		return s.store(ctx, jobID, key, body, contentType)
	})
	s.mu.Lock()
	if err != nil {
		s.stats.Dropped++
	} else {
		s.stats.Queued++
	}
	s.mu.Unlock()
	if err != nil {
		if err == pool.ErrQueueFull {
			return "", ErrQueueFull
		}
		return "", err
	}

	s.logger.Debug("Mirror job queued",
		zap.String("job_id", jobID),
		zap.String("key", key))
	return jobID, nil
}

func (s *Service) store(ctx context.Context, jobID, key string, body []byte, contentType string) error {
	res, err := s.provider.Put(ctx, key, bytes.NewReader(body), int64(len(body)), contentType)

	s.mu.Lock()
	if err != nil {
		s.stats.Failed++
	} else {
		s.stats.Stored++
		s.stats.TotalBytes += res.Size
		s.stats.LastKey = key
		s.stats.LastStored = time.Now()
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("Mirror copy failed",
			zap.String("job_id", jobID),
			zap.String("key", key),
			zap.Error(err))
		return err
	}

	s.logger.Info("Mirror copy stored",
		zap.String("job_id", jobID),
		zap.String("key", key),
		zap.String("provider", res.Provider),
		zap.Int64("size", res.Size),
		zap.Duration("elapsed", res.Elapsed))
	return nil
}

// HealthCheck reports the provider's health.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.provider.HealthCheck(ctx)
}

// Provider returns the provider name.
func (s *Service) Provider() string {
	return s.provider.Name()
}

// Stats returns a copy of the counters.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func archiveBody(req upload.Request, res upload.Result) ([]byte, string) {
	switch r := req.(type) {
	case upload.FilePayload:
		contentType := r.MediaType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		return r.Body, contentType
	case upload.TextPayload:
		return []byte(r.Text), res.MediaType
	}
	return nil, "application/octet-stream"
}
