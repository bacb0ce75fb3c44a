// handlers_parse.go - Parse session operation handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// HandleStartParse starts a new parse session for an uploaded document.
func (h *Handler) HandleStartParse(c echo.Context) error {
	var req startParseRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.FileID == "" {
		return NewValidationError("fileId")
	}

	filePath, err := h.store.GetFilePath(req.FileID)
	if err != nil {
		return NewNotFoundError("document", req.FileID)
	}

	sess, err := h.sessionMgr.StartSession(req.FileID, filePath)
	if err != nil {
		return NewInternalError("failed to start session", err)
	}

	return c.JSON(http.StatusAccepted, sess)
}

// HandleParseStatus returns the current status of a parse session.
func (h *Handler) HandleParseStatus(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	sess, ok := h.sessionMgr.GetSession(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	h.sessionMgr.TouchSession(id)

	return c.JSON(http.StatusOK, sess)
}

// HandleSessionKeepAlive extends session lifetime for active viewing.
func (h *Handler) HandleSessionKeepAlive(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	if ok := h.sessionMgr.TouchSession(id); !ok {
		return NewNotFoundError("session", id)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleGetInstructions returns the parsed route steps with their banner
// instructions.
func (h *Handler) HandleGetInstructions(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	doc, ok := h.sessionMgr.GetDocument(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	h.sessionMgr.TouchSession(id)

	return c.JSON(http.StatusOK, doc)
}

// HandleGetComponents returns a page of flattened components from the
// session's component store. Supports ?step=N to restrict to one step.
func (h *Handler) HandleGetComponents(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	stepIndex := -1
	if s := c.QueryParam("step"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return NewBadRequestError("invalid step parameter", err)
		}
		stepIndex = n
	}

	page := 0
	if s := c.QueryParam("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			page = n
		}
	}
	pageSize := 100
	if s := c.QueryParam("pageSize"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 1000 {
			pageSize = n
		}
	}

	rows, total, ok := h.sessionMgr.QueryComponents(id, stepIndex, pageSize, page*pageSize)
	if !ok {
		return NewNotFoundError("session", id)
	}

	h.sessionMgr.TouchSession(id)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"components": rows,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
	})
}

// HandleGetComponentCounts returns component counts grouped by type.
func (h *Handler) HandleGetComponentCounts(c echo.Context) error {
	id := c.Param("sessionId")
	if id == "" {
		return NewValidationError("sessionId")
	}

	counts, ok := h.sessionMgr.ComponentCountsByType(id)
	if !ok {
		return NewNotFoundError("session", id)
	}

	return c.JSON(http.StatusOK, counts)
}
