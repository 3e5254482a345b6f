package jobs

import (
	"log"
	"sync"
	"time"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/services"
)

// CleanupJob periodically removes expired sessions. It is the only
// background task in the service.
type CleanupJob struct {
	sessions *services.SessionManager
	interval time.Duration

	mu        sync.Mutex
	stop      chan struct{}
	isRunning bool
}

// NewCleanupJob creates a new session cleanup job
func NewCleanupJob(sessions *services.SessionManager, interval time.Duration) *CleanupJob {
	return &CleanupJob{
		sessions: sessions,
		interval: interval,
	}
}

// Start begins the periodic sweep
func (j *CleanupJob) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.isRunning {
		log.Println("Session cleanup job already running")
		return
	}
	j.isRunning = true
	j.stop = make(chan struct{})

	go j.run(j.stop)
	log.Printf("Session cleanup job started (every %v)", j.interval)
}

// Stop halts the periodic sweep
func (j *CleanupJob) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.isRunning {
		return
	}
	j.isRunning = false
	close(j.stop)

	log.Println("Session cleanup job stopped")
}

// RunOnce performs a single sweep and returns how many sessions were
// removed. Exposed so the sweep can be triggered deterministically.
func (j *CleanupJob) RunOnce() int {
	removed := j.sessions.SweepExpired()
	if removed > 0 {
		log.Printf("🧹 Removed %d expired session(s)", removed)
	}
	return removed
}

func (j *CleanupJob) run(stop chan struct{}) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.RunOnce()
		case <-stop:
			return
		}
	}
}
