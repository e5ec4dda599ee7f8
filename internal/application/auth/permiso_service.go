package auth

import (
	"context"
	"fmt"
	"sort"

	"github.com/brickapp/brickapp-api/internal/application/dto"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
	"github.com/brickapp/brickapp-api/pkg/permisos"
)

// PermisoService resuelve permisos de roles contra el catálogo embebido.
type PermisoService struct {
	permisoRepo repository.PermisoRepository
	rolRepo     repository.RolRepository
}

// NewPermisoService construye el servicio.
func NewPermisoService(permisoRepo repository.PermisoRepository, rolRepo repository.RolRepository) *PermisoService {
	return &PermisoService{permisoRepo: permisoRepo, rolRepo: rolRepo}
}

// SyncCatalogo inserta o actualiza en la tabla permisos el catálogo embebido.
func (s *PermisoService) SyncCatalogo(ctx context.Context) (int, error) {
	cat, err := permisos.Catalogo()
	if err != nil {
		return 0, err
	}
	list := make([]entity.Permiso, 0, len(cat))
	for _, p := range cat {
		list = append(list, entity.Permiso{Codigo: p.Codigo, Modulo: p.Modulo, Descripcion: p.Descripcion})
	}
	if err := s.permisoRepo.Upsert(ctx, list); err != nil {
		return 0, fmt.Errorf("sincronizar permisos: %w", err)
	}
	return len(list), nil
}

// ResolvePermisos devuelve los códigos asignados al rol, ordenados.
func (s *PermisoService) ResolvePermisos(ctx context.Context, rolID string) ([]string, error) {
	if rolID == "" {
		return []string{}, nil
	}
	codigos, err := s.rolRepo.GetPermisos(ctx, rolID)
	if err != nil {
		return nil, err
	}
	if codigos == nil {
		codigos = []string{}
	}
	sort.Strings(codigos)
	return codigos, nil
}

// Catalogo devuelve el catálogo agrupado por módulo, en el orden del archivo.
func (s *PermisoService) Catalogo() ([]dto.ModuloPermisosResponse, error) {
	cat, err := permisos.Catalogo()
	if err != nil {
		return nil, err
	}
	var out []dto.ModuloPermisosResponse
	idx := make(map[string]int)
	for _, p := range cat {
		i, ok := idx[p.Modulo]
		if !ok {
			i = len(out)
			idx[p.Modulo] = i
			out = append(out, dto.ModuloPermisosResponse{Modulo: p.Modulo})
		}
		out[i].Permisos = append(out[i].Permisos, dto.PermisoResponse{Codigo: p.Codigo, Descripcion: p.Descripcion})
	}
	return out, nil
}

// NormalizarCodigos elimina duplicados y rechaza códigos fuera del catálogo.
func NormalizarCodigos(codigos []string) ([]string, error) {
	validos, err := permisos.Codigos()
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(validos))
	for _, c := range validos {
		set[c] = true
	}
	seen := make(map[string]bool, len(codigos))
	out := make([]string, 0, len(codigos))
	for _, c := range codigos {
		if !set[c] {
			return nil, fmt.Errorf("%w: permiso desconocido %q", domain.ErrInvalidInput, c)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// TodosLosCodigos códigos completos del catálogo (rol Administrador).
func TodosLosCodigos() ([]string, error) {
	return permisos.Codigos()
}
