package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lifedesk/core/internal/application/services"
	"github.com/lifedesk/core/internal/domain/entities"
	"github.com/lifedesk/core/internal/infrastructure/logger"
	"github.com/lifedesk/core/internal/ports"
)

// LedgerHandler handles ledger entry and balance requests
type LedgerHandler struct {
	ledgerService *services.LedgerService
	logger        *logger.Logger
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *services.LedgerService, logger *logger.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// ListEntries handles GET /ledger
func (h *LedgerHandler) ListEntries(c echo.Context) error {
	entries, err := h.ledgerService.ListEntries(c.Request().Context())
	if err != nil {
		h.logger.Error("List ledger entries failed", "error", err)
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// CreateEntry handles POST /ledger
func (h *LedgerHandler) CreateEntry(c echo.Context) error {
	var req ports.CreateLedgerEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.ledgerService.CreateEntry(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create ledger entry failed", "error", err)
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// UpdateEntry handles PUT /ledger/:eid. Updates are full
// replacements, not patches: the stored effect is reversed and the
// replacement's effect applied in one transaction.
func (h *LedgerHandler) UpdateEntry(c echo.Context) error {
	id, err := pathID(c, "eid")
	if err != nil {
		return err
	}

	var req ports.UpdateLedgerEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.ledgerService.UpdateEntry(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Error("Update ledger entry failed", "error", err, "entry_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// DeleteEntry handles DELETE /ledger/:eid
func (h *LedgerHandler) DeleteEntry(c echo.Context) error {
	id, err := pathID(c, "eid")
	if err != nil {
		return err
	}

	if err := h.ledgerService.DeleteEntry(c.Request().Context(), id); err != nil {
		h.logger.Error("Delete ledger entry failed", "error", err, "entry_id", id)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Deleted"})
}

// GetAsset handles GET /asset
func (h *LedgerHandler) GetAsset(c echo.Context) error {
	return h.getBalance(c, entities.BalanceAsset)
}

// GetLiability handles GET /liability
func (h *LedgerHandler) GetLiability(c echo.Context) error {
	return h.getBalance(c, entities.BalanceLiability)
}

func (h *LedgerHandler) getBalance(c echo.Context, kind entities.BalanceKind) error {
	balance, err := h.ledgerService.GetBalance(c.Request().Context(), kind)
	if err != nil {
		h.logger.Error("Get balance failed", "error", err, "kind", kind)
		return err
	}
	return c.JSON(http.StatusOK, balance)
}

// OverwriteAsset handles POST /asset
func (h *LedgerHandler) OverwriteAsset(c echo.Context) error {
	return h.overwriteBalance(c, entities.BalanceAsset)
}

// OverwriteLiability handles POST /liability
func (h *LedgerHandler) OverwriteLiability(c echo.Context) error {
	return h.overwriteBalance(c, entities.BalanceLiability)
}

func (h *LedgerHandler) overwriteBalance(c echo.Context, kind entities.BalanceKind) error {
	var req ports.OverwriteBalanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	balance, err := h.ledgerService.OverwriteBalance(c.Request().Context(), kind, req.Amount)
	if err != nil {
		h.logger.Error("Overwrite balance failed", "error", err, "kind", kind)
		return domainError(err)
	}
	return c.JSON(http.StatusOK, balance)
}
