// mock_storage.go - Mock implementations for handler tests
package testutil

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/nav-banner/backend/internal/models"
	"github.com/nav-banner/backend/internal/store"
)

// MockStorage implements storage.Store for testing
type MockStorage struct {
	files    map[string]*models.FileInfo
	fileData map[string][]byte
	nextID   int
	mu       sync.RWMutex
}

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		files:    make(map[string]*models.FileInfo),
		fileData: make(map[string][]byte),
	}
}

func (m *MockStorage) Save(name string, r io.Reader) (*models.FileInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return m.SaveBytes(name, data)
}

// SaveBytes stores a document directly from a byte slice.
func (m *MockStorage) SaveBytes(name string, data []byte) (*models.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := fmt.Sprintf("test-file-%d", m.nextID)
	file := &models.FileInfo{
		ID:         id,
		Name:       name,
		Size:       int64(len(data)),
		UploadedAt: time.Now(),
		Status:     "uploaded",
	}

	m.files[id] = file
	m.fileData[id] = data
	return file, nil
}

func (m *MockStorage) Get(id string) (*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[id]
	if !ok {
		return nil, errors.New("file not found")
	}
	return file, nil
}

func (m *MockStorage) List(limit int) ([]*models.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var list []*models.FileInfo
	for _, info := range m.files {
		list = append(list, info)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].UploadedAt.After(list[j].UploadedAt)
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *MockStorage) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[id]; !ok {
		return errors.New("file not found")
	}
	delete(m.files, id)
	delete(m.fileData, id)
	return nil
}

func (m *MockStorage) Rename(id string, newName string) (*models.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, ok := m.files[id]
	if !ok {
		return nil, errors.New("file not found")
	}
	file.Name = newName
	return file, nil
}

func (m *MockStorage) GetFilePath(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.files[id]; !ok {
		return "", errors.New("file not found")
	}
	return "/mock/" + id, nil
}

// MockSessionManager implements api.SessionManager for testing
type MockSessionManager struct {
	Sessions  map[string]*models.ParseSession
	Documents map[string]*models.RouteDocument
	Rows      map[string][]*store.ComponentRow
	mu        sync.RWMutex
}

// NewMockSessionManager creates an empty mock session manager
func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		Sessions:  make(map[string]*models.ParseSession),
		Documents: make(map[string]*models.RouteDocument),
		Rows:      make(map[string][]*store.ComponentRow),
	}
}

func (m *MockSessionManager) StartSession(fileID, filePath string) (*models.ParseSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := fmt.Sprintf("test-session-%d", len(m.Sessions)+1)
	sess := models.NewParseSession(id, fileID)
	sess.Status = models.SessionStatusParsing
	m.Sessions[id] = sess
	return sess, nil
}

func (m *MockSessionManager) GetSession(id string) (*models.ParseSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.Sessions[id]
	return sess, ok
}

func (m *MockSessionManager) TouchSession(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.Sessions[id]
	return ok
}

func (m *MockSessionManager) GetDocument(id string) (*models.RouteDocument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.Documents[id]
	return doc, ok
}

func (m *MockSessionManager) QueryComponents(id string, stepIndex, limit, offset int) ([]*store.ComponentRow, int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.Rows[id]
	if !ok {
		return nil, 0, false
	}

	filtered := make([]*store.ComponentRow, 0, len(rows))
	for _, row := range rows {
		if stepIndex >= 0 && row.StepIndex != stepIndex {
			continue
		}
		filtered = append(filtered, row)
	}

	total := len(rows)
	if offset >= len(filtered) {
		return []*store.ComponentRow{}, total, true
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, true
}

func (m *MockSessionManager) ComponentCountsByType(id string) (map[string]int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows, ok := m.Rows[id]
	if !ok {
		return nil, false
	}
	counts := make(map[string]int)
	for _, row := range rows {
		counts[string(row.Component.Type)]++
	}
	return counts, true
}
