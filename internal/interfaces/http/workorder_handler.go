package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mcalvo/bracket-tracker-api/internal/application/dto"
	"github.com/mcalvo/bracket-tracker-api/internal/application/workorder"
	"github.com/mcalvo/bracket-tracker-api/internal/domain"
	"github.com/mcalvo/bracket-tracker-api/internal/domain/entity"
)

// WorkOrderHandler maneja el ciclo de vida de las órdenes de trabajo.
type WorkOrderHandler struct {
	uc *workorder.WorkOrderUseCase
}

// NewWorkOrderHandler construye el handler de órdenes.
func NewWorkOrderHandler(uc *workorder.WorkOrderUseCase) *WorkOrderHandler {
	return &WorkOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de trabajo
// @Tags         work-orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkOrderRequest  true  "order_number, set_type, required_sets"
// @Success      201   {object}  dto.WorkOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/work-orders [post]
func (h *WorkOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.OrderNumber == "" || in.RequiredSets < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "order_number es requerido y required_sets debe ser >= 1"})
	}
	order, err := h.uc.Create(c.UserContext(), in.OrderNumber, in.SetType, in.RequiredSets, in.IncludeModifier, GetActor(c))
	if err != nil {
		return workOrderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toWorkOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de trabajo
// @Tags         work-orders
// @Produce      json
// @Param        status  query  string  false  "active o completed"
// @Success      200  {object}  dto.WorkOrderListResponse
// @Router       /api/work-orders [get]
func (h *WorkOrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.uc.List(c.Query("status"))
	if err != nil {
		return workOrderError(c, err)
	}
	out := dto.WorkOrderListResponse{Orders: make([]dto.WorkOrderResponse, 0, len(orders))}
	for _, o := range orders {
		out.Orders = append(out.Orders, toWorkOrderResponse(o))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         work-orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id} [get]
func (h *WorkOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return workOrderError(c, err)
	}
	return c.JSON(toWorkOrderResponse(order))
}

// Fulfillment godoc
// @Summary      Estado de cumplimiento de una orden (consulta sin bloqueo)
// @Tags         work-orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.FulfillmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/fulfillment [get]
func (h *WorkOrderHandler) Fulfillment(c *fiber.Ctx) error {
	status, err := h.uc.FulfillmentStatus(c.Params("id"))
	if err != nil {
		return workOrderError(c, err)
	}
	out := dto.FulfillmentResponse{WorkOrderID: status.WorkOrderID, Ready: status.Ready}
	for _, comp := range status.Components {
		out.Components = append(out.Components, dto.FulfillmentComponent{
			PartNumber: comp.PartNumber,
			Required:   comp.Required,
			Available:  comp.Available,
			Shortfall:  comp.Shortfall,
		})
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar orden: deduce componentes y cierra, atómico
// @Tags         work-orders
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.WorkOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id}/complete [post]
func (h *WorkOrderHandler) Complete(c *fiber.Ctx) error {
	order, err := h.uc.Complete(c.UserContext(), c.Params("id"), GetActor(c))
	if err != nil {
		return workOrderError(c, err)
	}
	return c.JSON(toWorkOrderResponse(order))
}

// Delete godoc
// @Summary      Borrar orden activa (no revierte stock)
// @Tags         work-orders
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/work-orders/{id} [delete]
func (h *WorkOrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return workOrderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toWorkOrderResponse(o *entity.WorkOrder) dto.WorkOrderResponse {
	return dto.WorkOrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		SetType:         o.SetType,
		RequiredSets:    o.RequiredSets,
		IncludeModifier: o.IncludeModifier,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		CreatedBy:       o.CreatedBy,
	}
}

func workOrderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrAlreadyCompleted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_COMPLETED", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return inventoryError(c, err)
	case errors.Is(err, domain.ErrUnknownSetType):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_SET_TYPE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidWorkOrder):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "INVALID_WORK_ORDER", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDataIntegrity):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "DATA_INTEGRITY", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
