package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/domain/serial"
)

// StockHandler maneja las peticiones HTTP de items de stock (protegido).
type StockHandler struct {
	uc *stock.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create godoc
// @Summary      Crear item de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockItemRequest  true  "part_id, quantity; location_id y batch opcionales"
// @Success      201   {object}  dto.StockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(c.Context(), stock.CreateInput{
		PartID:          in.PartID,
		LocationID:      in.LocationID,
		Quantity:        in.Quantity,
		Batch:           in.Batch,
		Notes:           in.Notes,
		DeleteOnDeplete: in.DeleteOnDeplete,
		UserID:          GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockItemResponse(item))
}

// GetByID godoc
// @Summary      Obtener item de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  dto.StockItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockItemResponse(item))
}

// List godoc
// @Summary      Listar items por ubicación o pieza
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        part_id      query  string  false  "Filtrar por pieza"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var items []dto.StockItemResponse
	var err error
	if partID := c.Query("part_id"); partID != "" {
		list, e := h.uc.ListByPart(c.Context(), partID)
		err = e
		for _, it := range list {
			items = append(items, dto.NewStockItemResponse(it))
		}
	} else {
		list, e := h.uc.ListByLocation(c.Context(), c.Query("location_id"))
		err = e
		for _, it := range list {
			items = append(items, dto.NewStockItemResponse(it))
		}
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// adjust aplica una operación (bool, error) y arma la respuesta común:
// applied=false indica que la petición era válida pero no produjo cambios.
func adjust(c *fiber.Ctx, applied bool, err error) error {
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"applied": applied})
}

// Add godoc
// @Summary      Añadir cantidad a un item
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del item"
// @Param        body  body  dto.AdjustStockRequest  true  "quantity > 0"
// @Success      200   {object}  map[string]bool
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ok, err := h.uc.Add(c.Context(), c.Params("id"), in.Quantity, GetUserID(c), in.Notes)
	return adjust(c, ok, err)
}

// Take godoc
// @Summary      Retirar cantidad de un item
// @Description  Si el resultado llega a cero y el item tiene delete_on_deplete,
//               el item se elimina; su historial se conserva.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del item"
// @Param        body  body  dto.AdjustStockRequest  true  "quantity > 0"
// @Success      200   {object}  map[string]bool
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/take [post]
func (h *StockHandler) Take(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ok, err := h.uc.Take(c.Context(), c.Params("id"), in.Quantity, GetUserID(c), in.Notes)
	return adjust(c, ok, err)
}

// Stocktake godoc
// @Summary      Fijar cantidad por conteo físico
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del item"
// @Param        body  body  dto.AdjustStockRequest  true  "quantity >= 0"
// @Success      200   {object}  map[string]bool
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/stocktake [post]
func (h *StockHandler) Stocktake(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ok, err := h.uc.Stocktake(c.Context(), c.Params("id"), in.Quantity, GetUserID(c), in.Notes)
	return adjust(c, ok, err)
}

// Move godoc
// @Summary      Mover un item a otra ubicación
// @Description  Sin quantity mueve todo el item; con quantity divide esa
//               porción hacia el destino y el origen conserva el resto.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del item"
// @Param        body  body  dto.MoveStockRequest  true  "location_id destino; quantity opcional"
// @Success      200   {object}  map[string]bool
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/move [post]
func (h *StockHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ok, err := h.uc.Move(c.Context(), c.Params("id"), in.LocationID, in.Notes, GetUserID(c), in.Quantity)
	return adjust(c, ok, err)
}

// Split godoc
// @Summary      Dividir un item en dos
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del item"
// @Param        body  body  dto.SplitStockRequest  true  "quantity a separar; location_id opcional"
// @Success      200   {object}  map[string]bool
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/split [post]
func (h *StockHandler) Split(c *fiber.Ctx) error {
	var in dto.SplitStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ok, err := h.uc.Split(c.Context(), c.Params("id"), in.Quantity, in.LocationID, GetUserID(c))
	return adjust(c, ok, err)
}

// Serialize godoc
// @Summary      Serializar unidades de un item
// @Description  Convierte quantity unidades del item en items individuales de
//               cantidad 1, cada uno con un número de serie tomado de la
//               especificación textual (ej. "1-5, 8, 10-12"). Valida todo
//               antes de mutar: si hay problemas, devuelve la lista completa.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del item"
// @Param        body  body  dto.SerializeStockRequest  true  "quantity, serials; location_id opcional"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/serialize [post]
func (h *StockHandler) Serialize(c *fiber.Ctx) error {
	var in dto.SerializeStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	serials, err := serial.Extract(in.Serials, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	err = h.uc.Serialize(c.Context(), c.Params("id"), in.Quantity, serials, GetUserID(c), in.LocationID, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "unidades serializadas"})
}

// ValidateSerials godoc
// @Summary      Pre-validar una especificación de seriales
// @Description  Para formularios: interpreta la especificación sin tocar el
//               stock y devuelve los números que produciría.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateSerialsRequest  true  "serials, quantity"
// @Success      200   {object}  dto.ValidateSerialsResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/stock/serials/validate [post]
func (h *StockHandler) ValidateSerials(c *fiber.Ctx) error {
	var in dto.ValidateSerialsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	serials, err := serial.Extract(in.Serials, in.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ValidateSerialsResponse{Serials: serials})
}

// Tracking godoc
// @Summary      Historial de un item
// @Description  Entradas de trazabilidad del item, más recientes primero. El
//               historial existe aunque el item haya sido eliminado.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del item"
// @Param        limit   query  int     false  "Máximo de entradas"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.TrackingEntryResponse
// @Router       /api/stock/{id}/tracking [get]
func (h *StockHandler) Tracking(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()
	entries, err := h.uc.History(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TrackingEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.NewTrackingEntryResponse(e))
	}
	return c.JSON(out)
}

// Barcode godoc
// @Summary      Payload de barcode de un item
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  dto.BarcodeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/barcode [get]
func (h *StockHandler) Barcode(c *fiber.Ctx) error {
	payload, err := h.uc.Barcode(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BarcodeResponse{Barcode: payload})
}
