package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// respondError mapea errores del dominio a respuestas HTTP. Los
// ValidationError llevan la lista completa de problemas para que los
// formularios puedan mostrarlos todos de una vez.
func respondError(c *fiber.Ctx, err error) error {
	if verr, ok := domain.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Code:     "VALIDATION",
			Message:  "datos inválidos",
			Problems: verr.Problems,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrHierarchyCycle):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "HIERARCHY_CYCLE", Message: "el movimiento crearía un ciclo en el árbol"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
