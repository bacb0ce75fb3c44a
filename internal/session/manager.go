// Package session tracks route parse sessions and the per-session
// component stores behind them.
package session

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nav-banner/backend/internal/display"
	"github.com/nav-banner/backend/internal/models"
	"github.com/nav-banner/backend/internal/parser"
	"github.com/nav-banner/backend/internal/store"
)

// MaxSessions limits concurrent sessions to prevent memory exhaustion.
const MaxSessions = 20

// SessionMaxAge is how long to keep completed sessions before cleanup.
const SessionMaxAge = 30 * time.Minute

// SessionKeepAliveWindow is how long to keep sessions that are actively being used.
const SessionKeepAliveWindow = 5 * time.Minute

// Manager handles active route parse sessions.
type Manager struct {
	sessions map[string]*SessionState
	mu       sync.RWMutex
	scale    display.Provider
	tempDir  string
}

// SessionState holds the session metadata, the parsed document and the
// DuckDB-backed component store.
type SessionState struct {
	Session      *models.ParseSession
	Document     *models.RouteDocument
	Store        *store.ComponentStore
	LastAccessed time.Time
}

// NewManager creates a session manager. The temp directory comes from
// DUCKDB_TEMP_DIR, defaulting to ./data/temp.
func NewManager(scale display.Provider) *Manager {
	tempDir := os.Getenv("DUCKDB_TEMP_DIR")
	if tempDir == "" {
		tempDir = "./data/temp"
	}
	os.MkdirAll(tempDir, 0755)
	return NewManagerWithTempDir(scale, tempDir)
}

// NewManagerWithTempDir creates a session manager with a specific temp directory.
func NewManagerWithTempDir(scale display.Provider, tempDir string) *Manager {
	if scale == nil {
		scale = display.Fixed(display.DefaultScale)
	}
	return &Manager{
		sessions: make(map[string]*SessionState),
		scale:    scale,
		tempDir:  tempDir,
	}
}

// StartSession begins parsing an uploaded route document in the background.
func (m *Manager) StartSession(fileID, filePath string) (*models.ParseSession, error) {
	m.cleanupOldSessionsIfNeeded()

	sessionID := uuid.New().String()

	sess := models.NewParseSession(sessionID, fileID)
	sess.Status = models.SessionStatusParsing
	sess.DisplayScale = m.scale.Scale()

	state := &SessionState{
		Session:      sess,
		LastAccessed: time.Now(),
	}

	m.mu.Lock()
	m.sessions[sessionID] = state
	m.mu.Unlock()

	go m.runParse(sessionID, filePath)

	return sess, nil
}

func (m *Manager) runParse(sessionID, filePath string) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Parse %s] PANIC recovered: %v\n", sessionID[:8], r)
			m.updateSessionError(sessionID, fmt.Sprintf("parse panicked: %v", r))
		}
	}()

	start := time.Now()
	fmt.Printf("[Parse %s] Parsing route document %s\n", sessionID[:8], filePath)

	doc, err := parser.ParseDirectionsFile(filePath, m.scale)
	if err != nil {
		fmt.Printf("[Parse %s] ERROR: %v\n", sessionID[:8], err)
		m.updateSessionError(sessionID, err.Error())
		return
	}

	m.setProgress(sessionID, 50)

	componentStore, err := store.NewComponentStore(m.tempDir, sessionID)
	if err != nil {
		m.updateSessionError(sessionID, fmt.Sprintf("creating component store: %v", err))
		return
	}

	for _, step := range doc.Steps {
		if step.Primary != nil {
			componentStore.AddInstruction(step.Index, store.SlotPrimary, step.Primary)
		}
		if step.Secondary != nil {
			componentStore.AddInstruction(step.Index, store.SlotSecondary, step.Secondary)
		}
	}
	if err := componentStore.Finalize(); err != nil {
		componentStore.Close()
		m.updateSessionError(sessionID, fmt.Sprintf("finalizing component store: %v", err))
		return
	}
	if err := componentStore.LastError(); err != nil {
		componentStore.Close()
		m.updateSessionError(sessionID, fmt.Sprintf("storing components: %v", err))
		return
	}

	elapsed := time.Since(start).Milliseconds()
	fmt.Printf("[Parse %s] Complete: %d steps, %d components in %dms\n",
		sessionID[:8], doc.StepCount, doc.ComponentCount, elapsed)

	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[sessionID]
	if !ok {
		componentStore.Close()
		return
	}
	state.Document = doc
	state.Store = componentStore
	state.Session.Status = models.SessionStatusComplete
	state.Session.Progress = 100
	state.Session.StepCount = doc.StepCount
	state.Session.ComponentCount = doc.ComponentCount
	state.Session.Warnings = doc.Warnings
	state.Session.ProcessingTimeMs = elapsed
}

func (m *Manager) setProgress(sessionID string, progress float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state, ok := m.sessions[sessionID]; ok {
		state.Session.Progress = progress
	}
}

func (m *Manager) updateSessionError(sessionID, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[sessionID]
	if !ok {
		return
	}

	state.Session.Status = models.SessionStatusError
	state.Session.Error = reason
}

// cleanupOldSessionsIfNeeded removes completed sessions when at capacity.
func (m *Manager) cleanupOldSessionsIfNeeded() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) < MaxSessions {
		return
	}

	toFree := len(m.sessions) - MaxSessions + 1
	deleted := 0
	for id, state := range m.sessions {
		if deleted >= toFree {
			break
		}
		if state.Session.Status != models.SessionStatusComplete &&
			state.Session.Status != models.SessionStatusError {
			continue
		}
		if state.Store != nil {
			state.Store.Close()
		}
		delete(m.sessions, id)
		deleted++
		fmt.Printf("[Manager] Cleaned up old session %s to free memory\n", id[:8])
	}
}

// CleanupOldSessions removes sessions older than maxAge, keeping sessions
// accessed within SessionKeepAliveWindow.
func (m *Manager) CleanupOldSessions(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	keepAliveCutoff := time.Now().Add(-SessionKeepAliveWindow)

	for id, state := range m.sessions {
		if state.Session.Status != models.SessionStatusComplete &&
			state.Session.Status != models.SessionStatusError {
			continue
		}
		if state.LastAccessed.After(keepAliveCutoff) {
			continue
		}
		if state.LastAccessed.Before(cutoff) {
			if state.Store != nil {
				state.Store.Close()
			}
			delete(m.sessions, id)
			fmt.Printf("[Manager] Cleaned up aged session %s (last accessed: %s ago)\n",
				id[:8], time.Since(state.LastAccessed).Round(time.Second))
		}
	}
}

// GetSession returns a session by ID.
func (m *Manager) GetSession(id string) (*models.ParseSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return state.Session, true
}

// TouchSession updates the LastAccessed timestamp so active sessions are
// not cleaned up.
func (m *Manager) TouchSession(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return false
	}
	state.LastAccessed = time.Now()
	return true
}

// GetDocument returns the parsed route document for a completed session.
func (m *Manager) GetDocument(id string) (*models.RouteDocument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[id]
	if !ok || state.Document == nil {
		return nil, false
	}
	return state.Document, true
}

// QueryComponents returns a page of stored component rows for a session.
// stepIndex < 0 means all steps.
func (m *Manager) QueryComponents(id string, stepIndex, limit, offset int) ([]*store.ComponentRow, int, bool) {
	m.mu.RLock()
	state, ok := m.sessions[id]
	if !ok || state.Store == nil {
		m.mu.RUnlock()
		return nil, 0, false
	}
	componentStore := state.Store
	m.mu.RUnlock()

	rows, err := componentStore.QueryComponents(stepIndex, limit, offset)
	if err != nil {
		fmt.Printf("[Manager] component query failed for %s: %v\n", id[:8], err)
		return nil, 0, false
	}
	return rows, componentStore.Count(), true
}

// ComponentCountsByType returns per-type component counts for a session.
func (m *Manager) ComponentCountsByType(id string) (map[string]int, bool) {
	m.mu.RLock()
	state, ok := m.sessions[id]
	if !ok || state.Store == nil {
		m.mu.RUnlock()
		return nil, false
	}
	componentStore := state.Store
	m.mu.RUnlock()

	counts, err := componentStore.CountByType()
	if err != nil {
		fmt.Printf("[Manager] count query failed for %s: %v\n", id[:8], err)
		return nil, false
	}
	return counts, true
}
