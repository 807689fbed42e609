package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/part"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
)

// PartHandler maneja las peticiones HTTP del registro de piezas (protegido).
type PartHandler struct {
	uc      *part.PartUseCase
	stockUC *stock.StockUseCase
}

// NewPartHandler construye el handler.
func NewPartHandler(uc *part.PartUseCase, stockUC *stock.StockUseCase) *PartHandler {
	return &PartHandler{uc: uc, stockUC: stockUC}
}

// Create godoc
// @Summary      Registrar pieza
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartRequest  true  "name; trackable habilita serialización"
// @Success      201   {object}  dto.PartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/parts [post]
func (h *PartHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.Create(c.Context(), part.CreateInput{
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Units:       in.Units,
		Trackable:   in.Trackable,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPartResponse(p))
}

// GetByID godoc
// @Summary      Obtener pieza
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la pieza"
// @Success      200  {object}  dto.PartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id} [get]
func (h *PartHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPartResponse(p))
}

// List godoc
// @Summary      Listar piezas de una categoría
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  string  true  "Categoría"
// @Success      200  {array}  dto.PartResponse
// @Router       /api/parts [get]
func (h *PartHandler) List(c *fiber.Ctx) error {
	parts, err := h.uc.ListByCategory(c.Context(), c.Query("category_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, dto.NewPartResponse(p))
	}
	return c.JSON(out)
}

// Stock godoc
// @Summary      Stock total de una pieza
// @Description  Suma la cantidad de todos los items de la pieza en todas las
//               ubicaciones, incluidas las unidades serializadas.
// @Tags         parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la pieza"
// @Success      200  {object}  dto.PartStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/parts/{id}/stock [get]
func (h *PartHandler) Stock(c *fiber.Ctx) error {
	partID := c.Params("id")
	total, err := h.stockUC.TotalStock(c.Context(), partID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.PartStockResponse{PartID: partID, TotalStock: total})
}
