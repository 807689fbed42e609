package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/user"
)

// UserHandler expone la identidad autenticada (protegido).
type UserHandler struct {
	uc *user.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *user.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	u, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	})
}
