package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mcalvo/bracket-tracker-api/internal/application/dto"
	"github.com/mcalvo/bracket-tracker-api/internal/application/settings"
	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
)

// SettingsHandler expone la configuración global (umbrales y webhook).
type SettingsHandler struct {
	uc *settings.SettingsUseCase
}

// NewSettingsHandler construye el handler de configuración.
func NewSettingsHandler(uc *settings.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración vigente
// @Tags         settings
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(toSettingsResponse(h.uc.Get()))
}

// Update godoc
// @Summary      Actualizar configuración (solo admin)
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, err := h.uc.Update(in.LowStockThreshold, in.CriticalThreshold, in.WebhookURL, GetActor(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "umbrales inválidos: deben ser >= 0 y critical <= low"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toSettingsResponse(updated))
}

func toSettingsResponse(s entity.StockSettings) dto.SettingsResponse {
	return dto.SettingsResponse{
		LowStockThreshold: s.LowStockThreshold,
		CriticalThreshold: s.CriticalThreshold,
		WebhookURL:        s.WebhookURL,
		UpdatedAt:         s.UpdatedAt,
		UpdatedBy:         s.UpdatedBy,
	}
}
