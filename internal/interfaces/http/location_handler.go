package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/tree"
)

// LocationHandler maneja las peticiones HTTP del árbol de ubicaciones (protegido).
type LocationHandler struct {
	uc *tree.LocationUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *tree.LocationUseCase) *LocationHandler {
	return &LocationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNodeRequest  true  "name; parent_id vacío = raíz"
// @Success      201   {object}  dto.NodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateNodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Create(c.Context(), tree.NodeInput{
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLocationResponse(loc, loc.Name, 0))
}

// List godoc
// @Summary      Listar ubicaciones con ruta y conteos
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NodeResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	infos, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.NodeResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, dto.NewLocationResponse(info.Location, info.Path, info.ItemCount))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una ubicación
// @Description  Incluye la ruta completa desde la raíz y el conteo de items
//               de todo el subárbol.
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.NodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	info, err := h.uc.Detail(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLocationResponse(info.Location, info.Path, info.ItemCount))
}

// Children godoc
// @Summary      Hijos directos de una ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {array}  dto.NodeResponse
// @Router       /api/locations/{id}/children [get]
func (h *LocationHandler) Children(c *fiber.Ctx) error {
	children, err := h.uc.Children(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.NodeResponse, 0, len(children))
	for _, child := range children {
		out = append(out, dto.NewLocationResponse(child, child.Name, 0))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar una ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la ubicación"
// @Param        body  body  dto.UpdateNodeRequest  true  "name, description"
// @Success      200   {object}  dto.NodeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateNodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Update(c.Context(), c.Params("id"), in.Name, in.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLocationResponse(loc, loc.Name, 0))
}

// Reparent godoc
// @Summary      Mover una ubicación bajo otro padre
// @Description  Rechaza con 409 los movimientos que crearían un ciclo
//               (colgar un nodo de sí mismo o de un descendiente).
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la ubicación"
// @Param        body  body  dto.ReparentNodeRequest  true  "parent_id nuevo; vacío = raíz"
// @Success      200   {object}  dto.NodeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/reparent [post]
func (h *LocationHandler) Reparent(c *fiber.Ctx) error {
	var in dto.ReparentNodeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Reparent(c.Context(), c.Params("id"), in.ParentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLocationResponse(loc, loc.Name, 0))
}

// Delete godoc
// @Summary      Eliminar una ubicación
// @Description  Los hijos directos suben al padre del nodo eliminado y el
//               stock que colgaba directamente se reasigna allí. Ningún item
//               se pierde.
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "ubicación eliminada"})
}

// Barcode godoc
// @Summary      Payload de barcode de una ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.BarcodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/barcode [get]
func (h *LocationHandler) Barcode(c *fiber.Ctx) error {
	payload, err := h.uc.Barcode(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BarcodeResponse{Barcode: payload})
}
