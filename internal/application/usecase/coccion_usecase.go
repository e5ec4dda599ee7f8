package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

// CoccionUseCase ciclo de vida de una cocción: encendido, seguimiento, finalización y operadores.
type CoccionUseCase struct {
	repo         repository.CoccionRepository
	hornoRepo    repository.HornoRepository
	personalRepo repository.PersonalRepository
	now          func() time.Time
}

// NewCoccionUseCase construye el caso de uso.
func NewCoccionUseCase(repo repository.CoccionRepository, hornoRepo repository.HornoRepository, personalRepo repository.PersonalRepository) *CoccionUseCase {
	return &CoccionUseCase{repo: repo, hornoRepo: hornoRepo, personalRepo: personalRepo, now: time.Now}
}

// Create inicia una cocción EN_PROCESO. Un horno no puede tener dos en proceso.
func (uc *CoccionUseCase) Create(ctx context.Context, empresaID string, in dto.CreateCoccionRequest) (*dto.CoccionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	horno, err := uc.hornoRepo.GetByID(ctx, empresaID, in.HornoID)
	if err != nil {
		return nil, err
	}
	if horno == nil {
		return nil, invalid("el horno %s no existe", in.HornoID)
	}
	if horno.Estado != entity.HornoActivo {
		return nil, conflict("el horno %q está inactivo", horno.Nombre)
	}
	enProceso, err := uc.repo.GetEnProcesoByHorno(ctx, empresaID, horno.ID)
	if err != nil {
		return nil, err
	}
	if enProceso != nil {
		return nil, conflict("el horno %q ya tiene una cocción en proceso", horno.Nombre)
	}

	now := uc.now()
	encendido, err := dto.ParseFecha(in.FechaEncendido, now)
	if err != nil {
		return nil, err
	}
	humeada, err := dto.ParseFechaOpcional(in.HumeadaInicio)
	if err != nil {
		return nil, err
	}
	quema, err := dto.ParseFechaOpcional(in.QuemaInicio)
	if err != nil {
		return nil, err
	}
	c := &entity.Coccion{
		ID:                uuid.New().String(),
		EmpresaID:         empresaID,
		HornoID:           horno.ID,
		HornoNombre:       horno.Nombre,
		FechaEncendido:    encendido,
		HumeadaInicio:     humeada,
		QuemaInicio:       quema,
		CantidadLadrillos: in.CantidadLadrillos,
		Estado:            entity.CoccionEnProceso,
		Observaciones:     strings.TrimSpace(in.Observaciones),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := validarFases(c); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCoccionResponse(c, nil), nil
}

// GetByID devuelve la cocción con sus operadores.
func (uc *CoccionUseCase) GetByID(ctx context.Context, empresaID, id string) (*dto.CoccionResponse, error) {
	c, err := uc.get(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	ops, err := uc.repo.ListOperadores(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return toCoccionResponse(c, ops), nil
}

// List lista cocciones filtrando por horno y estado.
func (uc *CoccionUseCase) List(ctx context.Context, empresaID string, in dto.CoccionFilterRequest) (*dto.CoccionListResponse, error) {
	page := dto.PageRequest{Limit: in.Limit, Offset: in.Offset}
	page.Normalize()
	estado := strings.ToUpper(strings.TrimSpace(in.Estado))
	if estado != "" && estado != entity.CoccionEnProceso && estado != entity.CoccionFinalizado {
		return nil, invalid("estado debe ser EN_PROCESO o FINALIZADO")
	}
	list, err := uc.repo.List(ctx, empresaID, repository.CoccionFilter{
		HornoID: strings.TrimSpace(in.HornoID),
		Estado:  estado,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CoccionResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCoccionResponse(c, nil))
	}
	return &dto.CoccionListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update modifica fechas de fase, cantidad y observaciones.
func (uc *CoccionUseCase) Update(ctx context.Context, empresaID, id string, in dto.UpdateCoccionRequest) (*dto.CoccionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if in.FechaEncendido != nil {
		t, err := dto.ParseFecha(*in.FechaEncendido, c.FechaEncendido)
		if err != nil {
			return nil, err
		}
		c.FechaEncendido = t
	}
	if in.HumeadaInicio != nil {
		if c.HumeadaInicio, err = dto.ParseFechaOpcional(*in.HumeadaInicio); err != nil {
			return nil, err
		}
	}
	if in.QuemaInicio != nil {
		if c.QuemaInicio, err = dto.ParseFechaOpcional(*in.QuemaInicio); err != nil {
			return nil, err
		}
	}
	if in.CantidadLadrillos != nil {
		c.CantidadLadrillos = *in.CantidadLadrillos
	}
	if in.Observaciones != nil {
		c.Observaciones = strings.TrimSpace(*in.Observaciones)
	}
	if err := validarFases(c); err != nil {
		return nil, err
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCoccionResponse(c, nil), nil
}

// Finalizar cierra la cocción. fecha_apagado no puede ser anterior al encendido.
func (uc *CoccionUseCase) Finalizar(ctx context.Context, empresaID, id string, in dto.FinalizarCoccionRequest) (*dto.CoccionResponse, error) {
	c, err := uc.get(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if c.Estado == entity.CoccionFinalizado {
		return nil, conflict("la cocción ya fue finalizada")
	}
	apagado, err := dto.ParseFecha(in.FechaApagado, uc.now())
	if err != nil {
		return nil, err
	}
	c.FechaApagado = &apagado
	c.Estado = entity.CoccionFinalizado
	if err := validarFases(c); err != nil {
		return nil, err
	}
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCoccionResponse(c, nil), nil
}

// Delete elimina la cocción y sus asignaciones de operadores.
func (uc *CoccionUseCase) Delete(ctx context.Context, empresaID, id string) error {
	return uc.repo.Delete(ctx, empresaID, id)
}

// AddOperador asigna un trabajador de la misma empresa a la cocción.
func (uc *CoccionUseCase) AddOperador(ctx context.Context, empresaID, coccionID string, in dto.AddOperadorRequest) (*dto.CoccionOperadorResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	c, err := uc.get(ctx, empresaID, coccionID)
	if err != nil {
		return nil, err
	}
	p, err := uc.personalRepo.GetByID(ctx, empresaID, in.PersonalID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, invalid("el trabajador %s no existe en la empresa", in.PersonalID)
	}
	now := uc.now()
	fecha, err := dto.ParseFecha(in.Fecha, now)
	if err != nil {
		return nil, err
	}
	op := &entity.CoccionOperador{
		ID:             uuid.New().String(),
		CoccionID:      c.ID,
		PersonalID:     p.ID,
		PersonalNombre: p.NombreCompleto,
		Funcion:        in.Funcion,
		Fecha:          fecha,
		CreatedAt:      now,
	}
	if err := uc.repo.AddOperador(ctx, op); err != nil {
		return nil, err
	}
	out := toOperadorResponse(op)
	return &out, nil
}

// ListOperadores operadores asignados a la cocción.
func (uc *CoccionUseCase) ListOperadores(ctx context.Context, empresaID, coccionID string) ([]dto.CoccionOperadorResponse, error) {
	c, err := uc.get(ctx, empresaID, coccionID)
	if err != nil {
		return nil, err
	}
	ops, err := uc.repo.ListOperadores(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CoccionOperadorResponse, 0, len(ops))
	for _, o := range ops {
		out = append(out, toOperadorResponse(o))
	}
	return out, nil
}

// RemoveOperador quita una asignación.
func (uc *CoccionUseCase) RemoveOperador(ctx context.Context, empresaID, coccionID, operadorID string) error {
	c, err := uc.get(ctx, empresaID, coccionID)
	if err != nil {
		return err
	}
	ok, err := uc.repo.DeleteOperador(ctx, c.ID, operadorID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("operador")
	}
	return nil
}

func (uc *CoccionUseCase) get(ctx context.Context, empresaID, id string) (*entity.Coccion, error) {
	c, err := uc.repo.GetByID(ctx, empresaID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("cocción")
	}
	return c, nil
}

// validarFases exige el orden encendido <= humeada <= quema <= apagado en las fechas presentes.
func validarFases(c *entity.Coccion) error {
	prev, prevName := c.FechaEncendido, "fecha_encendido"
	for _, f := range []struct {
		name string
		t    *time.Time
	}{
		{"humeada_inicio", c.HumeadaInicio},
		{"quema_inicio", c.QuemaInicio},
		{"fecha_apagado", c.FechaApagado},
	} {
		if f.t == nil {
			continue
		}
		if f.t.Before(prev) {
			return invalid("%s no puede ser anterior a %s", f.name, prevName)
		}
		prev, prevName = *f.t, f.name
	}
	return nil
}

func toCoccionResponse(c *entity.Coccion, ops []*entity.CoccionOperador) *dto.CoccionResponse {
	out := &dto.CoccionResponse{
		ID:                c.ID,
		HornoID:           c.HornoID,
		HornoNombre:       c.HornoNombre,
		FechaEncendido:    c.FechaEncendido,
		FechaApagado:      c.FechaApagado,
		HumeadaInicio:     c.HumeadaInicio,
		QuemaInicio:       c.QuemaInicio,
		CantidadLadrillos: c.CantidadLadrillos,
		Estado:            c.Estado,
		Observaciones:     c.Observaciones,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
	for _, o := range ops {
		out.Operadores = append(out.Operadores, toOperadorResponse(o))
	}
	return out
}

func toOperadorResponse(o *entity.CoccionOperador) dto.CoccionOperadorResponse {
	return dto.CoccionOperadorResponse{
		ID:             o.ID,
		PersonalID:     o.PersonalID,
		PersonalNombre: o.PersonalNombre,
		Funcion:        o.Funcion,
		Fecha:          o.Fecha,
	}
}
