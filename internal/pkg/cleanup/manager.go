package cleanup

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/losnachoschipies/news-server/app/repository"
)

// MaxNewsAge is how long an announcement survives before the purge
// removes it.
const MaxNewsAge = 30 * 24 * time.Hour

// DefaultInterval is how often the purge runs after startup.
const DefaultInterval = 24 * time.Hour

// Manager owns the background purge of aged news rows. It is started once
// at process initialization and stopped during graceful shutdown; it holds
// no state beyond the repository handle.
type Manager struct {
	repo     repository.NewsRepository
	interval time.Duration
	ticker   *time.Ticker
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewManager creates a purge manager over the given repository.
func NewManager(repo repository.NewsRepository, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manager{
		repo:     repo,
		interval: interval,
	}
}

// Start runs one purge immediately and then one per interval until Stop.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	m.stopCh = make(chan struct{})
	m.running = true
	m.ticker = time.NewTicker(m.interval)

	log.Info("[Cleanup] Starting news purge task")

	m.RunOnce()

	m.wg.Add(1)
	go m.purgeWorker()
}

// Stop halts the purge task and waits for the worker to finish.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.ticker.Stop()
	close(m.stopCh)
	m.running = false
	m.wg.Wait()

	log.Info("[Cleanup] News purge task stopped")
}

// RunOnce purges every announcement older than MaxNewsAge. Image files
// referenced by purged rows are left on disk; only an authenticated delete
// cascades to files.
func (m *Manager) RunOnce() {
	cutoff := time.Now().Add(-MaxNewsAge)
	deleted, err := m.repo.DeleteOlderThan(cutoff)
	if err != nil {
		log.Errorf("[Cleanup] News purge failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Infof("[Cleanup] Purged %d announcement(s) older than 30 days", deleted)
	}
}

func (m *Manager) purgeWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			return
		case <-m.ticker.C:
			m.RunOnce()
		}
	}
}
