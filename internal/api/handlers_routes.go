// handlers_routes.go - Route document upload and listing
package api

import (
	"bytes"
	"encoding/base64"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// HandleUploadRoute accepts a directions document as base64 JSON and saves
// it to storage.
func (h *Handler) HandleUploadRoute(c echo.Context) error {
	var req uploadRouteRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := req.validate(); err != nil {
		return err
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return NewBadRequestError("invalid base64 data", err)
	}

	info, err := h.store.Save(req.Name, bytes.NewReader(decoded))
	if err != nil {
		return NewInternalError("failed to save document", err)
	}

	return c.JSON(http.StatusCreated, info)
}

// HandleRecentRoutes lists the most recently uploaded documents.
func (h *Handler) HandleRecentRoutes(c echo.Context) error {
	limit := 20
	if s := c.QueryParam("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = n
		}
	}

	list, err := h.store.List(limit)
	if err != nil {
		return NewInternalError("failed to list documents", err)
	}

	return c.JSON(http.StatusOK, list)
}

// HandleGetRoute returns metadata for one uploaded document.
func (h *Handler) HandleGetRoute(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("document", id)
	}

	return c.JSON(http.StatusOK, info)
}

// HandleDeleteRoute removes an uploaded document.
func (h *Handler) HandleDeleteRoute(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return NewValidationError("id")
	}

	if err := h.store.Delete(id); err != nil {
		return NewNotFoundError("document", id)
	}

	return c.NoContent(http.StatusNoContent)
}
