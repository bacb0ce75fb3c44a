// handlers_layout.go - Abbreviation / fitting endpoint
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HandleAbbreviate shortens an instruction to fit a maximum width, using
// component abbreviation priorities and the rule dictionary.
func (h *Handler) HandleAbbreviate(c echo.Context) error {
	var req abbreviateRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid request body", err)
	}
	if req.Instruction == nil {
		return NewValidationError("instruction")
	}
	if req.MaxLength <= 0 {
		return NewValidationError("maxLength")
	}

	text := h.engine.Fit(req.Instruction, req.MaxLength)

	return c.JSON(http.StatusOK, abbreviateResponse{
		Text: text,
		Fits: len(text) <= req.MaxLength,
	})
}
