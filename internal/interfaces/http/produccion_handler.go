package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/application/usecase"
)

// HornoHandler hornos de la ladrillera.
type HornoHandler struct {
	uc *usecase.HornoUseCase
}

// NewHornoHandler construye el handler.
func NewHornoHandler(uc *usecase.HornoUseCase) *HornoHandler {
	return &HornoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear horno
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.HornoRequest  true  "Datos del horno"
// @Success      201   {object}  dto.HornoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/horno [post]
func (h *HornoHandler) Create(c *fiber.Ctx) error {
	var in dto.HornoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetEmpresaID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/horno/:id
func (h *HornoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar hornos
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.HornoResponse
// @Router       /api/horno [get]
func (h *HornoHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetEmpresaID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/horno/:id
func (h *HornoHandler) Update(c *fiber.Ctx) error {
	var in dto.HornoRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/horno/:id
func (h *HornoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetEmpresaID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CoccionHandler ciclos de cocción y sus operadores.
type CoccionHandler struct {
	uc *usecase.CoccionUseCase
}

// NewCoccionHandler construye el handler.
func NewCoccionHandler(uc *usecase.CoccionUseCase) *CoccionHandler {
	return &CoccionHandler{uc: uc}
}

// Create godoc
// @Summary      Iniciar cocción
// @Description  Un horno solo puede tener una cocción EN_PROCESO.
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCoccionRequest  true  "Horno y fechas de inicio"
// @Success      201   {object}  dto.CoccionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/coccion [post]
func (h *CoccionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCoccionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetEmpresaID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cocción con operadores
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cocción"
// @Success      200  {object}  dto.CoccionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/coccion/{id} [get]
func (h *CoccionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cocciones
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        id_horno  query  string  false  "Filtrar por horno"
// @Param        estado    query  string  false  "EN_PROCESO o FINALIZADO"
// @Param        limit     query  int     false  "Límite"  default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {object}  dto.CoccionListResponse
// @Router       /api/coccion [get]
func (h *CoccionHandler) List(c *fiber.Ctx) error {
	var in dto.CoccionFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidQuery(c)
	}
	out, err := h.uc.List(c.UserContext(), GetEmpresaID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update PUT /api/coccion/:id
func (h *CoccionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCoccionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Finalizar godoc
// @Summary      Finalizar cocción
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cocción"
// @Param        body  body  dto.FinalizarCoccionRequest  false  "Fecha de apagado"
// @Success      200   {object}  dto.CoccionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/coccion/{id}/finalizar [put]
func (h *CoccionHandler) Finalizar(c *fiber.Ctx) error {
	var in dto.FinalizarCoccionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.Finalizar(c.UserContext(), GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/coccion/:id
func (h *CoccionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetEmpresaID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddOperador POST /api/coccion/:id/operadores
func (h *CoccionHandler) AddOperador(c *fiber.Ctx) error {
	var in dto.AddOperadorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddOperador(c.UserContext(), GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOperadores GET /api/coccion/:id/operadores
func (h *CoccionHandler) ListOperadores(c *fiber.Ctx) error {
	out, err := h.uc.ListOperadores(c.UserContext(), GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveOperador DELETE /api/coccion/:id/operadores/:idOperador
func (h *CoccionHandler) RemoveOperador(c *fiber.Ctx) error {
	if err := h.uc.RemoveOperador(c.UserContext(), GetEmpresaID(c), c.Params("id"), c.Params("idOperador")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
