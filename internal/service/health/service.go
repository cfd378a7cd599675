package health

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/scoot-me/scootme/internal/ports"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

type CheckResult struct {
	Name      string        `json:"name"`
	Status    Status        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration_ms"`
	Timestamp time.Time     `json:"timestamp"`
}

type HealthResponse struct {
	Status    Status    `json:"status"`
	Version   string    `json:"version,omitempty"`
	Uptime    string    `json:"uptime,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

// Checker probes one dependency.
type Checker func(ctx context.Context) CheckResult

type Config struct {
	Version  string
	DB       *sql.DB
	Cache    ports.Cache
	QueueURL string
}

// Service answers liveness and readiness probes. Readiness fans out to all
// registered checkers concurrently.
type Service struct {
	db        *sql.DB
	cache     ports.Cache
	queueURL  string
	startTime time.Time
	version   string
	checkers  map[string]Checker
	log       *zap.Logger
	mu        sync.RWMutex
}

func NewService(cfg *Config, log *zap.Logger) *Service {
	s := &Service{
		db:        cfg.DB,
		cache:     cfg.Cache,
		queueURL:  cfg.QueueURL,
		startTime: time.Now(),
		version:   cfg.Version,
		checkers:  make(map[string]Checker),
		log:       log,
	}

	if cfg.DB != nil {
		s.RegisterChecker("database", s.checkDatabase)
	}
	if cfg.Cache != nil {
		s.RegisterChecker("cache", s.checkCache)
	}
	if cfg.QueueURL != "" {
		s.RegisterChecker("queue", s.checkQueue)
	}

	return s
}

func (s *Service) RegisterChecker(name string, checker Checker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkers[name] = checker
}

// Health is the liveness probe: the process is up.
func (s *Service) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{
		Status:    StatusHealthy,
		Version:   s.version,
		Uptime:    time.Since(s.startTime).String(),
		Timestamp: time.Now(),
	}
}

// Ready runs all dependency checks concurrently and aggregates the result.
func (s *Service) Ready(ctx context.Context) *ReadyResponse {
	s.mu.RLock()
	checkers := make(map[string]Checker, len(s.checkers))
	for k, v := range s.checkers {
		checkers[k] = v
	}
	s.mu.RUnlock()

	results := make(map[string]CheckResult)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()

			checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			result := checker(checkCtx)

			mu.Lock()
			results[name] = result
			mu.Unlock()
		}(name, checker)
	}

	wg.Wait()

	overall := StatusHealthy
	ready := true
	for _, result := range results {
		if result.Status == StatusUnhealthy {
			overall = StatusUnhealthy
			ready = false
		} else if result.Status == StatusDegraded && overall != StatusUnhealthy {
			overall = StatusDegraded
		}
	}

	return &ReadyResponse{
		Ready:     ready,
		Status:    overall,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

func (s *Service) checkDatabase(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{Name: "database", Timestamp: start}

	err := s.db.PingContext(ctx)
	result.Duration = time.Since(start)

	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = fmt.Sprintf("ping failed: %v", err)
		s.log.Warn("Database health check failed", zap.Error(err))
	} else {
		result.Status = StatusHealthy
		result.Message = "connection ok"
	}
	return result
}

func (s *Service) checkCache(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{Name: "cache", Timestamp: start}

	err := s.cache.Ping()
	result.Duration = time.Since(start)

	if err != nil {
		// Scooter listings fall back to the database when the cache is down,
		// so a cache outage degrades rather than fails readiness.
		result.Status = StatusDegraded
		result.Message = fmt.Sprintf("ping failed: %v", err)
		s.log.Warn("Cache health check failed", zap.Error(err))
	} else {
		result.Status = StatusHealthy
		result.Message = "connection ok"
	}
	return result
}

func (s *Service) checkQueue(ctx context.Context) CheckResult {
	start := time.Now()
	result := CheckResult{Name: "queue", Timestamp: start}

	// The queue adapters reconnect on their own; here we only report that a
	// broker is configured.
	result.Duration = time.Since(start)
	result.Status = StatusHealthy
	result.Message = "configured"
	return result
}
