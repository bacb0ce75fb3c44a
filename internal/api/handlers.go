// handlers.go - Handler wiring and shared request types
package api

import (
	"github.com/nav-banner/backend/internal/layout"
	"github.com/nav-banner/backend/internal/models"
	"github.com/nav-banner/backend/internal/storage"
	"github.com/nav-banner/backend/internal/store"
)

// SessionManager abstracts the session package for handler tests.
type SessionManager interface {
	StartSession(fileID, filePath string) (*models.ParseSession, error)
	GetSession(id string) (*models.ParseSession, bool)
	TouchSession(id string) bool
	GetDocument(id string) (*models.RouteDocument, bool)
	QueryComponents(id string, stepIndex, limit, offset int) ([]*store.ComponentRow, int, bool)
	ComponentCountsByType(id string) (map[string]int, bool)
}

// Handler holds the dependencies shared by all endpoints.
type Handler struct {
	store      storage.Store
	sessionMgr SessionManager
	engine     *layout.Engine
	version    string
}

// NewHandler creates the API handler.
func NewHandler(fileStore storage.Store, sessionMgr SessionManager, engine *layout.Engine, version string) *Handler {
	if engine == nil {
		engine = layout.NewEngine(nil)
	}
	return &Handler{
		store:      fileStore,
		sessionMgr: sessionMgr,
		engine:     engine,
		version:    version,
	}
}

type uploadRouteRequest struct {
	Name string `json:"name"`
	Data string `json:"data"` // base64-encoded document
}

func (r *uploadRouteRequest) validate() error {
	if r.Name == "" {
		return NewValidationError("name")
	}
	if r.Data == "" {
		return NewValidationError("data")
	}
	return nil
}

type startParseRequest struct {
	FileID string `json:"fileId"`
}

type abbreviateRequest struct {
	MaxLength   int                       `json:"maxLength"`
	Instruction *models.VisualInstruction `json:"instruction"`
}

type abbreviateResponse struct {
	Text string `json:"text"`
	Fits bool   `json:"fits"`
}
