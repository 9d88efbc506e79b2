package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nyumbani/property-dashboard/models"
	"github.com/nyumbani/property-dashboard/repositories"
	"github.com/nyumbani/property-dashboard/services"
	"go.uber.org/zap"
)

// Recorder accepts access audit entries. Implementations must not block the caller.
type Recorder interface {
	Record(log *models.AccessAuditLog) error
}

// AuditService persists access audit entries asynchronously through a
// fixed pool of workers reading from a buffered channel
type AuditService struct {
	repo        repositories.AccessAuditRepository
	logger      *zap.Logger
	eventChan   chan *models.AccessAuditLog
	workerCount int
	bufferSize  int
	wg          sync.WaitGroup
	started     bool
	stopped     bool
	mu          sync.Mutex
}

// Config holds configuration for the AuditService
type Config struct {
	BufferSize  int // Size of the event buffer channel
	WorkerCount int // Number of concurrent workers
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		BufferSize:  1000,
		WorkerCount: 2,
	}
}

// NewAuditService creates a new AuditService instance
func NewAuditService(repo repositories.AccessAuditRepository, logger *zap.Logger, config Config) *AuditService {
	if config.BufferSize <= 0 || config.WorkerCount <= 0 {
		config = DefaultConfig()
	}
	return &AuditService{
		repo:        repo,
		logger:      logger,
		eventChan:   make(chan *models.AccessAuditLog, config.BufferSize),
		workerCount: config.WorkerCount,
		bufferSize:  config.BufferSize,
	}
}

// Start starts the background workers
func (s *AuditService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("audit service already started")
	}
	if s.stopped {
		return fmt.Errorf("audit service cannot be restarted")
	}

	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.started = true
	s.logger.Info("started audit service",
		zap.Int("worker_count", s.workerCount),
		zap.Int("buffer_size", s.bufferSize))

	return nil
}

// Stop closes the queue and waits for pending entries to be written
func (s *AuditService) Stop(timeout time.Duration) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return fmt.Errorf("audit service not started")
	}
	s.started = false
	s.stopped = true
	pending := len(s.eventChan)
	close(s.eventChan)
	s.mu.Unlock()

	s.logger.Info("stopping audit service", zap.Int("pending_events", pending))

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("audit service stopped gracefully")
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("audit service stop timeout after %v", timeout)
	}
}

// Record queues an entry without blocking. A full buffer drops the entry.
func (s *AuditService) Record(log *models.AccessAuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return fmt.Errorf("audit service not started")
	}

	select {
	case s.eventChan <- log:
		return nil
	default:
		s.logger.Warn("audit event channel full, dropping event",
			zap.String("action", string(log.Action)),
			zap.String("role", log.Role),
			zap.String("resource", log.Resource))
		return services.ErrAuditBufferFull
	}
}

// List returns the newest entries, filtered by role when role is non-empty
func (s *AuditService) List(ctx context.Context, role string, limit int) ([]*models.AccessAuditLog, error) {
	if role != "" {
		return s.repo.ListByRole(ctx, role, limit)
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *AuditService) worker(id int) {
	defer s.wg.Done()

	s.logger.Debug("audit worker started", zap.Int("worker_id", id))

	for log := range s.eventChan {
		if err := s.processEvent(log); err != nil {
			s.logger.Error("failed to process audit event",
				zap.Int("worker_id", id),
				zap.Error(err),
				zap.String("action", string(log.Action)),
				zap.String("role", log.Role))
		}
	}

	s.logger.Debug("audit worker stopped", zap.Int("worker_id", id))
}

func (s *AuditService) processEvent(log *models.AccessAuditLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.repo.Insert(ctx, log); err != nil {
		return fmt.Errorf("failed to insert access audit log: %w", err)
	}

	return nil
}

// GetStats returns statistics about the audit service
func (s *AuditService) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		BufferSize:    s.bufferSize,
		PendingEvents: len(s.eventChan),
		WorkerCount:   s.workerCount,
		Started:       s.started,
	}
}

// Stats represents audit service statistics
type Stats struct {
	BufferSize    int  `json:"buffer_size"`
	PendingEvents int  `json:"pending_events"`
	WorkerCount   int  `json:"worker_count"`
	Started       bool `json:"started"`
}
