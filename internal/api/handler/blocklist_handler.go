package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankaccess/account-system/internal/core/ports"
)

// BlocklistHandler exposes the block registry's REST surface.
type BlocklistHandler struct {
	blocks ports.BlockService
}

func NewBlocklistHandler(blocks ports.BlockService) *BlocklistHandler {
	return &BlocklistHandler{blocks: blocks}
}

// Block denies a national id.
//
// @Summary      Block a national id
// @Tags         blocklist
// @Accept       json
// @Produce      json
// @Param        body  body      blockEntryRequest  true  "National id and username"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/blocklist/block [post]
func (h *BlocklistHandler) Block(c echo.Context) error {
	var req blockEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.blocks.Block(c.Request().Context(), req.NationalID, req.Username); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "success", Message: "national id blocked"})
}

// Unblock lifts the denial for a national id.
//
// @Summary      Unblock a national id
// @Tags         blocklist
// @Produce      json
// @Param        national_id  path      string  true  "National id"
// @Success      200          {object}  statusResponse
// @Failure      404          {object}  errorResponse
// @Router       /v1/blocklist/unblock/{national_id} [post]
func (h *BlocklistHandler) Unblock(c echo.Context) error {
	nationalID := c.Param("national_id")

	if err := h.blocks.Unblock(c.Request().Context(), nationalID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statusResponse{Status: "success", Message: "national id unblocked"})
}

// IsBlocked reports the blocked-status of a national id. A missing entry is
// a normal "not blocked" answer, never an error.
//
// @Summary      Check blocked-status
// @Tags         blocklist
// @Produce      json
// @Param        national_id  path      string  true  "National id"
// @Success      200          {object}  blockStatusResponse
// @Router       /v1/blocklist/is-blocked/{national_id} [get]
func (h *BlocklistHandler) IsBlocked(c echo.Context) error {
	nationalID := c.Param("national_id")

	blocked, err := h.blocks.IsBlocked(c.Request().Context(), nationalID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, blockStatusResponse{Status: "success", IsBlocked: blocked})
}
