// handlers_archive.go - Binary archive export and decode
package api

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nav-banner/backend/internal/archive"
	"github.com/nav-banner/backend/internal/models"
)

// HandleExportArchive encodes a session's parsed document into the binary
// archive format and returns it as a msgpack blob.
func (h *Handler) HandleExportArchive(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	doc, ok := h.sessionMgr.GetDocument(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	enc := archive.NewEncoder()
	if err := doc.EncodeArchive(enc); err != nil {
		return NewInternalError("failed to encode archive", err)
	}
	data, err := enc.Bytes()
	if err != nil {
		return NewInternalError("failed to encode archive", err)
	}

	h.sessionMgr.TouchSession(id)

	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// HandleDecodeArchive decodes a previously exported archive. The decode is
// strict: any missing required field or unparseable enum rejects the whole
// archive with a 400, never a partial document.
func (h *Handler) HandleDecodeArchive(c echo.Context) error {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return NewBadRequestError("failed to read request body", err)
	}
	if len(data) == 0 {
		return NewValidationError("body")
	}

	dec, err := archive.NewDecoder(data)
	if err != nil {
		return NewDecodeError(err)
	}

	doc, err := models.DocumentFromArchive(dec)
	if err != nil {
		return NewDecodeError(err)
	}

	return c.JSON(http.StatusOK, doc)
}
