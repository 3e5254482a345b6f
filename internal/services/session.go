package services

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/models"
	"github.com/SIMBACM/BaseForWhatsappProj/internal/storage"
)

// SessionManager is the authoritative keeper of all active feedback
// sessions. It owns step transitions, the inactivity expiry policy and
// completion-record emission.
type SessionManager struct {
	completions storage.CompletionStore
	sessions    map[string]*models.Session
	mu          sync.RWMutex
	sessionTTL  time.Duration
	sweptTotal  int64
}

// SessionStats is a read-only snapshot for monitoring
type SessionStats struct {
	TotalActive    int         `json:"total_active"`
	SessionsByStep map[int]int `json:"sessions_by_step"`
	SweptTotal     int64       `json:"swept_total"`
	Timestamp      time.Time   `json:"timestamp"`
}

// NewSessionManager creates a new session manager. Completed sessions are
// written to the given store before removal.
func NewSessionManager(completions storage.CompletionStore, sessionTTL time.Duration) *SessionManager {
	return &SessionManager{
		completions: completions,
		sessions:    make(map[string]*models.Session),
		sessionTTL:  sessionTTL,
	}
}

// Create inserts a fresh step-1 session for the phone, replacing any
// existing one.
func (sm *SessionManager) Create(userPhone string) *models.Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return snapshot(sm.createLocked(userPhone))
}

func (sm *SessionManager) createLocked(userPhone string) *models.Session {
	now := time.Now()
	session := &models.Session{
		UserPhone:    userPhone,
		Step:         models.StepName,
		CreatedAt:    now,
		LastActivity: now,
	}
	sm.sessions[userPhone] = session

	log.Printf("Session created for %s", userPhone)
	return session
}

// Get returns the session for the phone, creating a fresh one if none
// exists or the existing one has expired. The returned session is never
// expired. LastActivity is refreshed on a hit.
func (sm *SessionManager) Get(userPhone string) *models.Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[userPhone]
	if !exists {
		return snapshot(sm.createLocked(userPhone))
	}
	if sm.expired(session) {
		log.Printf("Session for %s expired after inactivity, starting over", userPhone)
		return snapshot(sm.createLocked(userPhone))
	}

	session.LastActivity = time.Now()
	return snapshot(session)
}

// Update merges the given fields into the session and refreshes
// LastActivity. A missing session is an anomaly: it is logged, a fresh
// session is created and the fields are applied to it.
func (sm *SessionManager) Update(userPhone string, fields models.SessionUpdate) *models.Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[userPhone]
	if !exists {
		log.Printf("❌ Update for %s without a session - creating one", userPhone)
		session = sm.createLocked(userPhone)
	}

	if fields.Step != nil {
		session.Step = *fields.Step
	}
	if fields.Name != nil {
		session.Name = *fields.Name
	}
	if fields.Feedback != nil {
		session.Feedback = *fields.Feedback
	}
	if fields.ProfileImageRef != nil {
		session.ProfileImageRef = *fields.ProfileImageRef
	}
	session.LastActivity = time.Now()

	return snapshot(session)
}

// Advance moves the session to the next step, clamped at StepDone.
func (sm *SessionManager) Advance(userPhone string) *models.Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session, exists := sm.sessions[userPhone]
	if !exists {
		log.Printf("❌ Advance for %s without a session - creating one", userPhone)
		return snapshot(sm.createLocked(userPhone))
	}

	next := session.Step + 1
	if next > models.StepDone {
		next = models.StepDone
	}
	session.Step = next
	session.LastActivity = time.Now()

	return snapshot(session)
}

// Complete writes the durable completion record, removes the session and
// returns the pre-deletion snapshot. Returns nil when there is nothing to
// complete.
func (sm *SessionManager) Complete(userPhone string) *models.Session {
	sm.mu.Lock()
	session, exists := sm.sessions[userPhone]
	if !exists {
		sm.mu.Unlock()
		log.Printf("❌ Complete for %s without a session", userPhone)
		return nil
	}
	delete(sm.sessions, userPhone)
	snap := snapshot(session)
	sm.mu.Unlock()

	record := &models.CompletionRecord{
		UserPhone:       snap.UserPhone,
		Name:            snap.Name,
		Feedback:        snap.Feedback,
		ProfileImageRef: snap.ProfileImageRef,
		DurationMinutes: int(math.Round(time.Since(snap.CreatedAt).Minutes())),
		CompletedAt:     time.Now(),
	}
	if err := sm.completions.SaveCompletion(record); err != nil {
		log.Printf("❌ Failed to save completion record for %s: %v", userPhone, err)
	} else {
		log.Printf("✅ Feedback completed by %s (%s) in %d minutes",
			snap.Name, userPhone, record.DurationMinutes)
	}

	return snap
}

// Reset forces the session back to step 1 and clears all collected fields,
// creating the session if absent.
func (sm *SessionManager) Reset(userPhone string) *models.Session {
	var (
		step  = models.StepName
		empty = ""
	)
	return sm.Update(userPhone, models.SessionUpdate{
		Step:            &step,
		Name:            &empty,
		Feedback:        &empty,
		ProfileImageRef: &empty,
	})
}

// IsExpired reports whether the session's inactivity window has elapsed.
func (sm *SessionManager) IsExpired(session *models.Session) bool {
	return sm.expired(session)
}

func (sm *SessionManager) expired(session *models.Session) bool {
	return time.Since(session.LastActivity) > sm.sessionTTL
}

// SweepExpired removes every expired session and returns how many were
// removed.
func (sm *SessionManager) SweepExpired() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	for phone, session := range sm.sessions {
		if sm.expired(session) {
			delete(sm.sessions, phone)
			removed++
			log.Printf("Cleaned up expired session for %s (step %d)", phone, session.Step)
		}
	}
	sm.sweptTotal += int64(removed)

	return removed
}

// Stats returns a snapshot of current session counts for monitoring
func (sm *SessionManager) Stats() *SessionStats {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	stats := &SessionStats{
		SessionsByStep: make(map[int]int),
		SweptTotal:     sm.sweptTotal,
		Timestamp:      time.Now(),
	}
	for _, session := range sm.sessions {
		if sm.expired(session) {
			continue
		}
		stats.TotalActive++
		stats.SessionsByStep[int(session.Step)]++
	}

	return stats
}

// snapshot copies a session so callers never share the stored record.
func snapshot(s *models.Session) *models.Session {
	copied := *s
	return &copied
}
