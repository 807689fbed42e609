package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/tree"
)

// CategoryHandler maneja las peticiones HTTP del árbol de categorías (protegido).
type CategoryHandler struct {
	uc *tree.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *tree.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNodeRequest  true  "name; parent_id vacío = raíz"
// @Success      201   {object}  dto.NodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.uc.Create(c.Context(), tree.NodeInput{
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCategoryResponse(cat, cat.Name, 0))
}

// List godoc
// @Summary      Listar categorías con ruta y conteos
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NodeResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	infos, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.NodeResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, dto.NewCategoryResponse(info.Category, info.Path, info.PartCount))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.NodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	info, err := h.uc.Detail(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewCategoryResponse(info.Category, info.Path, info.PartCount))
}

// Update godoc
// @Summary      Renombrar una categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la categoría"
// @Param        body  body  dto.UpdateNodeRequest  true  "name, description"
// @Success      200   {object}  dto.NodeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.uc.Update(c.Context(), c.Params("id"), in.Name, in.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewCategoryResponse(cat, cat.Name, 0))
}

// Reparent godoc
// @Summary      Mover una categoría bajo otro padre
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la categoría"
// @Param        body  body  dto.ReparentNodeRequest  true  "parent_id nuevo; vacío = raíz"
// @Success      200   {object}  dto.NodeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/reparent [post]
func (h *CategoryHandler) Reparent(c *fiber.Ctx) error {
	var in dto.ReparentNodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cat, err := h.uc.Reparent(c.Context(), c.Params("id"), in.ParentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewCategoryResponse(cat, cat.Name, 0))
}

// Delete godoc
// @Summary      Eliminar una categoría
// @Description  Las subcategorías y las piezas directas suben al padre.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}

// Barcode godoc
// @Summary      Payload de barcode de una categoría
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.BarcodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/barcode [get]
func (h *CategoryHandler) Barcode(c *fiber.Ctx) error {
	payload, err := h.uc.Barcode(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BarcodeResponse{Barcode: payload})
}
