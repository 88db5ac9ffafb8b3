package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mcalvo/bracket-tracker-api/internal/application/analyzer"
	"github.com/mcalvo/bracket-tracker-api/internal/application/dto"
	"github.com/mcalvo/bracket-tracker-api/internal/application/ledger"
	"github.com/mcalvo/bracket-tracker-api/internal/application/settings"
	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
)

// InventoryHandler maneja consulta y mutación de stock, historial y análisis de sets.
type InventoryHandler struct {
	ledgerUC       *ledger.StockLedgerUseCase
	analyzerUC     *analyzer.SetAnalyzerUseCase
	settingsUC     *settings.SettingsUseCase
	historyDefault int
}

// NewInventoryHandler construye el handler de inventario. historyDefault es el
// límite de filas del historial cuando el cliente no pasa ?limit.
func NewInventoryHandler(ledgerUC *ledger.StockLedgerUseCase, analyzerUC *analyzer.SetAnalyzerUseCase, settingsUC *settings.SettingsUseCase, historyDefault int) *InventoryHandler {
	return &InventoryHandler{ledgerUC: ledgerUC, analyzerUC: analyzerUC, settingsUC: settingsUC, historyDefault: historyDefault}
}

// ListParts godoc
// @Summary      Listar parts agrupados por familia
// @Tags         parts
// @Produce      json
// @Success      200  {object}  dto.PartListResponse
// @Router       /api/parts [get]
func (h *InventoryHandler) ListParts(c *fiber.Ctx) error {
	parts, err := h.ledgerUC.ListParts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	critical, low := h.settingsUC.Thresholds()

	out := dto.PartListResponse{}
	var group *dto.FamilyGroup
	for _, p := range parts {
		if group == nil || group.Family != p.Family {
			out.Families = append(out.Families, dto.FamilyGroup{Family: p.Family})
			group = &out.Families[len(out.Families)-1]
		}
		group.Parts = append(group.Parts, dto.PartResponse{
			PartNumber: p.PartNumber,
			Name:       p.Name,
			Family:     p.Family,
			Quantity:   p.Quantity,
			MinStock:   p.MinStock,
			StockState: p.StockState(critical, low),
		})
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock de un part (delta con signo)
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "part_number, change, station"
// @Success      200   {object}  dto.AdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/parts/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	qty, err := h.ledgerUC.Adjust(c.UserContext(), ledger.Line{
		PartNumber: in.PartNumber,
		Change:     in.Change,
		Station:    in.Station,
		Notes:      in.Notes,
	}, GetActor(c))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(dto.AdjustResponse{PartNumber: in.PartNumber, NewQuantity: qty})
}

// PhysicalCount godoc
// @Summary      Registrar conteo físico (cantidad absoluta)
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PhysicalCountRequest  true  "part_number, actual_quantity"
// @Success      200   {object}  dto.AdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/parts/count [post]
func (h *InventoryHandler) PhysicalCount(c *fiber.Ctx) error {
	var in dto.PhysicalCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	_, qty, err := h.ledgerUC.PhysicalCount(c.UserContext(), in.PartNumber, in.ActualQuantity, GetActor(c))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(dto.AdjustResponse{PartNumber: in.PartNumber, NewQuantity: qty})
}

// History godoc
// @Summary      Historial de movimientos (más reciente primero)
// @Tags         parts
// @Produce      json
// @Param        family  query  string  false  "H6, H7 o H9"
// @Param        limit   query  int     false  "máximo de filas (default 50)"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	family := c.Query("family")
	limit := c.QueryInt("limit", h.historyDefault)
	rows, err := h.ledgerUC.History(family, limit)
	if err != nil {
		return inventoryError(c, err)
	}
	out := dto.HistoryResponse{History: make([]dto.TransactionResponse, 0, len(rows))}
	for _, t := range rows {
		out.History = append(out.History, toTransactionResponse(t))
	}
	return c.JSON(out)
}

// SetAnalysis godoc
// @Summary      Sets armables con el stock actual
// @Tags         sets
// @Produce      json
// @Success      200  {object}  dto.SetAnalysisResponse
// @Router       /api/sets/analysis [get]
func (h *InventoryHandler) SetAnalysis(c *fiber.Ctx) error {
	analyses, err := h.analyzerUC.AnalyzeAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.SetAnalysisResponse{}
	for _, a := range analyses {
		entry := dto.SetAnalysisEntry{SetType: a.SetType, MaxSets: a.MaxBuildable}
		for _, comp := range a.Components {
			entry.Components = append(entry.Components, dto.SetAnalysisComponent{
				PartNumber: comp.PartNumber,
				Available:  comp.Available,
				Limiting:   comp.Limiting,
			})
		}
		out.Sets = append(out.Sets, entry)
	}
	return c.JSON(out)
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:         t.ID,
		GroupID:    t.GroupID,
		PartNumber: t.PartNumber,
		Change:     t.Change,
		Station:    t.Station,
		Notes:      t.Notes,
		Actor:      t.Actor,
		Timestamp:  t.CreatedAt,
	}
}

// inventoryError mapea errores de dominio a códigos HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		shortfalls := make([]fiber.Map, 0, len(insufficient.Shortfalls))
		for _, s := range insufficient.Shortfalls {
			shortfalls = append(shortfalls, fiber.Map{
				"part_number": s.PartNumber,
				"requested":   s.Requested,
				"available":   s.Available,
				"missing":     s.Missing,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":       "INSUFFICIENT_STOCK",
			"message":    err.Error(),
			"shortfalls": shortfalls,
		})
	case errors.Is(err, domain.ErrUnknownPart):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_PART", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownSetType):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SET_TYPE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
