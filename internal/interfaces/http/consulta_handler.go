package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/brickapp/brickapp-api/internal/application/consulta"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/infrastructure/metrics"
)

// ConsultaHandler consultas de DNI (RENIEC) y RUC (SUNAT).
type ConsultaHandler struct {
	uc *consulta.UseCase
}

// NewConsultaHandler construye el handler.
func NewConsultaHandler(uc *consulta.UseCase) *ConsultaHandler {
	return &ConsultaHandler{uc: uc}
}

// DNI godoc
// @Summary      Consultar DNI
// @Tags         consultas
// @Security     Bearer
// @Produce      json
// @Param        numero  path  string  true  "DNI de 8 dígitos"
// @Success      200     {object}  dto.PersonaResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/consulta/dni/{numero} [get]
func (h *ConsultaHandler) DNI(c *fiber.Ctx) error {
	out, err := h.uc.DNI(c.UserContext(), c.Params("numero"))
	metrics.Consulta("dni", resultadoConsulta(err))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RUC godoc
// @Summary      Consultar RUC
// @Tags         consultas
// @Security     Bearer
// @Produce      json
// @Param        numero  path  string  true  "RUC de 11 dígitos"
// @Success      200     {object}  dto.EmpresaSunatResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      502     {object}  dto.ErrorResponse
// @Router       /api/consulta/ruc/{numero} [get]
func (h *ConsultaHandler) RUC(c *fiber.Ctx) error {
	out, err := h.uc.RUC(c.UserContext(), c.Params("numero"))
	metrics.Consulta("ruc", resultadoConsulta(err))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func resultadoConsulta(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalido"
	case errors.Is(err, domain.ErrNotFound):
		return "no_encontrado"
	default:
		return "error"
	}
}
