package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nav-banner/backend/internal/display"
	"github.com/nav-banner/backend/internal/models"
)

const testDirections = `{
  "routes": [{"legs": [{"steps": [
    {
      "name": "Main Street",
      "distance": 420.5,
      "maneuver": {"type": "turn", "modifier": "right"},
      "bannerInstructions": [{
        "primary": {
          "text": "Turn right onto Main Street",
          "components": [
            {"text": "Main Street", "type": "text", "abbr": "Main St", "abbr_priority": 0}
          ]
        }
      }]
    }
  ]}]}]
}`

func waitForSession(t *testing.T, m *Manager, id string) *models.ParseSession {
	t.Helper()
	for i := 0; i < 50; i++ {
		sess, ok := m.GetSession(id)
		if !ok {
			t.Fatal("Session not found")
		}
		if sess.Status == models.SessionStatusComplete || sess.Status == models.SessionStatusError {
			return sess
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatal("Session did not finish in time")
	return nil
}

func TestSessionManager(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "route.json")
	if err := os.WriteFile(docPath, []byte(testDirections), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	m := NewManagerWithTempDir(display.Fixed(2), dir)

	sess, err := m.StartSession("file-1", docPath)
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	if sess.DisplayScale != 2 {
		t.Errorf("Expected display scale 2, got %d", sess.DisplayScale)
	}

	final := waitForSession(t, m, sess.ID)
	if final.Status != models.SessionStatusComplete {
		t.Fatalf("Session failed: %s", final.Error)
	}
	if final.StepCount != 1 {
		t.Errorf("Expected 1 step, got %d", final.StepCount)
	}
	if final.ComponentCount != 1 {
		t.Errorf("Expected 1 component, got %d", final.ComponentCount)
	}

	doc, ok := m.GetDocument(sess.ID)
	if !ok {
		t.Fatal("Expected document for completed session")
	}
	if doc.Steps[0].Name != "Main Street" {
		t.Errorf("Unexpected step name %s", doc.Steps[0].Name)
	}

	rows, total, ok := m.QueryComponents(sess.ID, -1, 10, 0)
	if !ok {
		t.Fatal("QueryComponents failed")
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("Expected 1 row, got total=%d len=%d", total, len(rows))
	}
	if rows[0].Component.Text == nil || *rows[0].Component.Text != "Main Street" {
		t.Errorf("Unexpected component text: %v", rows[0].Component.Text)
	}

	counts, ok := m.ComponentCountsByType(sess.ID)
	if !ok {
		t.Fatal("ComponentCountsByType failed")
	}
	if counts["text"] != 1 {
		t.Errorf("Expected 1 text component, got %d", counts["text"])
	}
}

func TestSessionManager_ParseError(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(docPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	m := NewManagerWithTempDir(display.Fixed(1), dir)

	sess, err := m.StartSession("file-1", docPath)
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}

	final := waitForSession(t, m, sess.ID)
	if final.Status != models.SessionStatusError {
		t.Fatalf("Expected error status, got %s", final.Status)
	}
	if final.Error == "" {
		t.Error("Expected error message")
	}

	if _, ok := m.GetDocument(sess.ID); ok {
		t.Error("Expected no document for failed session")
	}
}

func TestSessionManager_UnknownSession(t *testing.T) {
	m := NewManagerWithTempDir(display.Fixed(1), t.TempDir())

	if _, ok := m.GetSession("nope"); ok {
		t.Error("Expected missing session")
	}
	if m.TouchSession("nope") {
		t.Error("Expected TouchSession to report missing session")
	}
	if _, _, ok := m.QueryComponents("nope", -1, 10, 0); ok {
		t.Error("Expected QueryComponents to report missing session")
	}
}
