// Package testhelpers reúne dobles de prueba compartidos por los tests de la aplicación:
// un almacén en memoria que implementa los puertos de repositorio y, con la etiqueta
// de compilación "container", un PostgreSQL real levantado con testcontainers.
package testhelpers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/domain/entity"
	"github.com/brickapp/brickapp-api/internal/domain/repository"
)

// Store base de datos en memoria. Los repositorios que devuelve comparten el mismo estado.
// RunVenta/RunRol/RunOnboarding restauran una copia del estado si el callback falla,
// imitando el rollback de una transacción.
type Store struct {
	mu sync.Mutex

	empresas    map[string]entity.Empresa
	usuarios    map[string]entity.Usuario
	roles       map[string]entity.Rol
	rolPermisos map[string][]string
	permisos    map[string]entity.Permiso
	productos   map[string]entity.Producto
	clientes    map[string]entity.Cliente
	proveedores map[string]entity.Proveedor
	personal    map[string]entity.Personal
	hornos      map[string]entity.Horno
	cocciones   map[string]entity.Coccion
	operadores  map[string]entity.CoccionOperador
	ventas      map[string]entity.Venta
	detalles    map[string]entity.DetalleVenta
	servicios   map[string]entity.ServicioVenta
	comprob     map[string]entity.ComprobanteVenta // por id_venta
	numeracion  map[string]entity.NumeracionComprobante
	entregas    map[string]entity.EntregaVenta
	detEntrega  map[string]entity.DetalleEntregaVenta

	// FailOn fuerza un error en la operación indicada (p. ej. "CreateServicio").
	FailOn string
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.empresas = map[string]entity.Empresa{}
	s.usuarios = map[string]entity.Usuario{}
	s.roles = map[string]entity.Rol{}
	s.rolPermisos = map[string][]string{}
	s.permisos = map[string]entity.Permiso{}
	s.productos = map[string]entity.Producto{}
	s.clientes = map[string]entity.Cliente{}
	s.proveedores = map[string]entity.Proveedor{}
	s.personal = map[string]entity.Personal{}
	s.hornos = map[string]entity.Horno{}
	s.cocciones = map[string]entity.Coccion{}
	s.operadores = map[string]entity.CoccionOperador{}
	s.ventas = map[string]entity.Venta{}
	s.detalles = map[string]entity.DetalleVenta{}
	s.servicios = map[string]entity.ServicioVenta{}
	s.comprob = map[string]entity.ComprobanteVenta{}
	s.numeracion = map[string]entity.NumeracionComprobante{}
	s.entregas = map[string]entity.EntregaVenta{}
	s.detEntrega = map[string]entity.DetalleEntregaVenta{}
}

var errForzado = errors.New("error forzado")

func (s *Store) fail(op string) error {
	if s.FailOn == op {
		return fmt.Errorf("%s: %w", op, errForzado)
	}
	return nil
}

func clone[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type snapshot struct {
	empresas    map[string]entity.Empresa
	usuarios    map[string]entity.Usuario
	roles       map[string]entity.Rol
	rolPermisos map[string][]string
	ventas      map[string]entity.Venta
	detalles    map[string]entity.DetalleVenta
	servicios   map[string]entity.ServicioVenta
	comprob     map[string]entity.ComprobanteVenta
	numeracion  map[string]entity.NumeracionComprobante
	entregas    map[string]entity.EntregaVenta
	detEntrega  map[string]entity.DetalleEntregaVenta
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		empresas: clone(s.empresas), usuarios: clone(s.usuarios), roles: clone(s.roles),
		rolPermisos: clone(s.rolPermisos), ventas: clone(s.ventas), detalles: clone(s.detalles),
		servicios: clone(s.servicios), comprob: clone(s.comprob), numeracion: clone(s.numeracion),
		entregas: clone(s.entregas), detEntrega: clone(s.detEntrega),
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.empresas, s.usuarios, s.roles, s.rolPermisos = sn.empresas, sn.usuarios, sn.roles, sn.rolPermisos
	s.ventas, s.detalles, s.servicios, s.comprob = sn.ventas, sn.detalles, sn.servicios, sn.comprob
	s.numeracion, s.entregas, s.detEntrega = sn.numeracion, sn.entregas, sn.detEntrega
}

func (s *Store) tx(fn func() error) error {
	sn := s.snapshot()
	if err := fn(); err != nil {
		s.restore(sn)
		return err
	}
	return nil
}

// RunVenta implementa el TxRunner de ventas.
func (s *Store) RunVenta(ctx context.Context, fn func(
	ventaRepo repository.VentaRepository,
	numeracionRepo repository.NumeracionRepository,
	entregaRepo repository.EntregaRepository,
) error) error {
	return s.tx(func() error { return fn(s.Ventas(), s.Numeracion(), s.Entregas()) })
}

// RunRol implementa el TxRunner de roles.
func (s *Store) RunRol(ctx context.Context, fn func(rolRepo repository.RolRepository) error) error {
	return s.tx(func() error { return fn(s.Roles()) })
}

// RunOnboarding implementa el TxRunner del alta de empresa.
func (s *Store) RunOnboarding(ctx context.Context, fn func(
	empresaRepo repository.EmpresaRepository,
	rolRepo repository.RolRepository,
	usuarioRepo repository.UsuarioRepository,
) error) error {
	return s.tx(func() error { return fn(s.Empresas(), s.Roles(), s.Usuarios()) })
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}

// ---- empresas ----

type empresaRepo struct{ s *Store }

// Empresas repositorio de empresas.
func (s *Store) Empresas() repository.EmpresaRepository { return empresaRepo{s} }

func (r empresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.empresas {
		if x.RUC == e.RUC {
			return fmt.Errorf("%w: RUC %s", domain.ErrDuplicate, e.RUC)
		}
	}
	r.s.empresas[e.ID] = *e
	return nil
}

func (r empresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.empresas[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (r empresaRepo) GetByRUC(ctx context.Context, ruc string) (*entity.Empresa, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.empresas {
		if e.RUC == ruc {
			return &e, nil
		}
	}
	return nil, nil
}

func (r empresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.empresas[e.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.empresas[e.ID] = *e
	return nil
}

// ---- usuarios ----

type usuarioRepo struct{ s *Store }

// Usuarios repositorio de usuarios.
func (s *Store) Usuarios() repository.UsuarioRepository { return usuarioRepo{s} }

func (r usuarioRepo) withRol(u entity.Usuario) *entity.Usuario {
	if rol, ok := r.s.roles[u.RolID]; ok {
		u.RolNombre = rol.Nombre
	}
	return &u
}

func (r usuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.usuarios {
		if strings.EqualFold(x.Usuario, u.Usuario) {
			return fmt.Errorf("%w: usuario %q", domain.ErrDuplicate, u.Usuario)
		}
	}
	r.s.usuarios[u.ID] = *u
	return nil
}

func (r usuarioRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.usuarios[id]; ok && u.EmpresaID == empresaID {
		return r.withRol(u), nil
	}
	return nil, nil
}

func (r usuarioRepo) GetByUsuario(ctx context.Context, login string) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.usuarios {
		if strings.EqualFold(u.Usuario, login) {
			return r.withRol(u), nil
		}
	}
	return nil, nil
}

func (r usuarioRepo) ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Usuario
	for _, u := range r.s.usuarios {
		if u.EmpresaID == empresaID {
			out = append(out, r.withRol(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreCompleto < out[j].NombreCompleto })
	return page(out, limit, offset), nil
}

func (r usuarioRepo) Update(ctx context.Context, u *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.usuarios[u.ID]
	if !ok || cur.EmpresaID != u.EmpresaID {
		return domain.ErrNotFound
	}
	for _, x := range r.s.usuarios {
		if x.ID != u.ID && strings.EqualFold(x.Usuario, u.Usuario) {
			return fmt.Errorf("%w: usuario %q", domain.ErrDuplicate, u.Usuario)
		}
	}
	u.PasswordHash = cur.PasswordHash
	r.s.usuarios[u.ID] = *u
	return nil
}

func (r usuarioRepo) UpdatePassword(ctx context.Context, empresaID, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.usuarios[id]
	if !ok || u.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	r.s.usuarios[id] = u
	return nil
}

func (r usuarioRepo) Delete(ctx context.Context, empresaID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.usuarios[id]
	if !ok || u.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	delete(r.s.usuarios, id)
	return nil
}

func (r usuarioRepo) CountByRol(ctx context.Context, empresaID, rolID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, u := range r.s.usuarios {
		if u.EmpresaID == empresaID && u.RolID == rolID {
			n++
		}
	}
	return n, nil
}

// ---- roles y permisos ----

type rolRepo struct{ s *Store }

// Roles repositorio de roles.
func (s *Store) Roles() repository.RolRepository { return rolRepo{s} }

func (r rolRepo) Create(ctx context.Context, rol *entity.Rol) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.roles {
		if x.EmpresaID == rol.EmpresaID && strings.EqualFold(x.Nombre, rol.Nombre) {
			return fmt.Errorf("%w: rol %q", domain.ErrDuplicate, rol.Nombre)
		}
	}
	r.s.roles[rol.ID] = *rol
	return nil
}

func (r rolRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Rol, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.roles[id]; ok && x.EmpresaID == empresaID {
		return &x, nil
	}
	return nil, nil
}

func (r rolRepo) GetByNombre(ctx context.Context, empresaID, nombre string) (*entity.Rol, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.roles {
		if x.EmpresaID == empresaID && strings.EqualFold(x.Nombre, nombre) {
			return &x, nil
		}
	}
	return nil, nil
}

func (r rolRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Rol, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Rol
	for _, x := range r.s.roles {
		if x.EmpresaID == empresaID {
			x := x
			out = append(out, &x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r rolRepo) Update(ctx context.Context, rol *entity.Rol) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.roles[rol.ID]
	if !ok || cur.EmpresaID != rol.EmpresaID {
		return domain.ErrNotFound
	}
	for _, x := range r.s.roles {
		if x.ID != rol.ID && x.EmpresaID == rol.EmpresaID && strings.EqualFold(x.Nombre, rol.Nombre) {
			return fmt.Errorf("%w: rol %q", domain.ErrDuplicate, rol.Nombre)
		}
	}
	r.s.roles[rol.ID] = *rol
	return nil
}

func (r rolRepo) Delete(ctx context.Context, empresaID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.roles[id]
	if !ok || x.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	for _, u := range r.s.usuarios {
		if u.RolID == id {
			return fmt.Errorf("%w: rol en uso", domain.ErrConflict)
		}
	}
	delete(r.s.roles, id)
	delete(r.s.rolPermisos, id)
	return nil
}

func (r rolRepo) GetPermisos(ctx context.Context, rolID string) ([]string, error) {
	if err := r.s.fail("GetPermisos"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]string(nil), r.s.rolPermisos[rolID]...), nil
}

func (r rolRepo) SetPermisos(ctx context.Context, rolID string, codigos []string) error {
	if err := r.s.fail("SetPermisos"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rolPermisos[rolID] = append([]string(nil), codigos...)
	return nil
}

type permisoRepo struct{ s *Store }

// Permisos repositorio del catálogo de permisos.
func (s *Store) Permisos() repository.PermisoRepository { return permisoRepo{s} }

func (r permisoRepo) Upsert(ctx context.Context, permisos []entity.Permiso) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range permisos {
		r.s.permisos[p.Codigo] = p
	}
	return nil
}

func (r permisoRepo) List(ctx context.Context) ([]entity.Permiso, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Permiso, 0, len(r.s.permisos))
	for _, p := range r.s.permisos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Codigo < out[j].Codigo })
	return out, nil
}

// ---- catálogos ----

type productoRepo struct{ s *Store }

// Productos repositorio de productos.
func (s *Store) Productos() repository.ProductoRepository { return productoRepo{s} }

func (r productoRepo) Create(ctx context.Context, p *entity.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.productos {
		if x.EmpresaID == p.EmpresaID && strings.EqualFold(x.Nombre, p.Nombre) {
			return fmt.Errorf("%w: producto %q", domain.ErrDuplicate, p.Nombre)
		}
	}
	r.s.productos[p.ID] = *p
	return nil
}

func (r productoRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Producto, error) {
	if err := r.s.fail("GetProducto"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.productos[id]; ok && x.EmpresaID == empresaID {
		return &x, nil
	}
	return nil, nil
}

func (r productoRepo) ListByEmpresa(ctx context.Context, empresaID string, soloActivos bool, limit, offset int) ([]*entity.Producto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Producto
	for _, x := range r.s.productos {
		if x.EmpresaID == empresaID && (!soloActivos || x.Activo) {
			x := x
			out = append(out, &x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, limit, offset), nil
}

func (r productoRepo) Update(ctx context.Context, p *entity.Producto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.productos[p.ID]; !ok || x.EmpresaID != p.EmpresaID {
		return domain.ErrNotFound
	}
	r.s.productos[p.ID] = *p
	return nil
}

func (r productoRepo) Delete(ctx context.Context, empresaID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.productos[id]
	if !ok || x.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	for _, d := range r.s.detalles {
		if d.ProductoID == id {
			return fmt.Errorf("%w: el producto tiene ventas registradas", domain.ErrConflict)
		}
	}
	delete(r.s.productos, id)
	return nil
}

type clienteRepo struct{ s *Store }

// Clientes repositorio de clientes.
func (s *Store) Clientes() repository.ClienteRepository { return clienteRepo{s} }

func (r clienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.clientes {
		if x.EmpresaID == c.EmpresaID && x.TipoDocumento == c.TipoDocumento && x.NumeroDocumento == c.NumeroDocumento {
			return fmt.Errorf("%w: cliente %s", domain.ErrDuplicate, c.NumeroDocumento)
		}
	}
	r.s.clientes[c.ID] = *c
	return nil
}

func (r clienteRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.clientes[id]; ok && x.EmpresaID == empresaID {
		return &x, nil
	}
	return nil, nil
}

func (r clienteRepo) GetByDocumento(ctx context.Context, empresaID, tipo, numero string) (*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.clientes {
		if x.EmpresaID == empresaID && x.TipoDocumento == tipo && x.NumeroDocumento == numero {
			return &x, nil
		}
	}
	return nil, nil
}

func (r clienteRepo) ListByEmpresa(ctx context.Context, empresaID, search string, limit, offset int) ([]*entity.Cliente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Cliente
	for _, x := range r.s.clientes {
		if x.EmpresaID == empresaID && (search == "" || contains(x.Nombre, search) || contains(x.NumeroDocumento, search)) {
			x := x
			out = append(out, &x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return page(out, limit, offset), nil
}

func (r clienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.clientes[c.ID]; !ok || x.EmpresaID != c.EmpresaID {
		return domain.ErrNotFound
	}
	for _, x := range r.s.clientes {
		if x.ID != c.ID && x.EmpresaID == c.EmpresaID && x.TipoDocumento == c.TipoDocumento && x.NumeroDocumento == c.NumeroDocumento {
			return fmt.Errorf("%w: cliente %s", domain.ErrDuplicate, c.NumeroDocumento)
		}
	}
	r.s.clientes[c.ID] = *c
	return nil
}

func (r clienteRepo) Delete(ctx context.Context, empresaID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.clientes[id]
	if !ok || x.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	for _, v := range r.s.ventas {
		if v.ClienteID == id {
			return fmt.Errorf("%w: el cliente tiene ventas registradas", domain.ErrConflict)
		}
	}
	delete(r.s.clientes, id)
	return nil
}

type proveedorRepo struct{ s *Store }

// Proveedores repositorio de proveedores.
func (s *Store) Proveedores() repository.ProveedorRepository { return proveedorRepo{s} }

func (r proveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.proveedores {
		if x.EmpresaID == p.EmpresaID && x.TipoDocumento == p.TipoDocumento && x.NumeroDocumento == p.NumeroDocumento {
			return fmt.Errorf("%w: proveedor %s", domain.ErrDuplicate, p.NumeroDocumento)
		}
	}
	r.s.proveedores[p.ID] = *p
	return nil
}

func (r proveedorRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.proveedores[id]; ok && x.EmpresaID == empresaID {
		return &x, nil
	}
	return nil, nil
}

func (r proveedorRepo) GetByDocumento(ctx context.Context, empresaID, tipo, numero string) (*entity.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.proveedores {
		if x.EmpresaID == empresaID && x.TipoDocumento == tipo && x.NumeroDocumento == numero {
			return &x, nil
		}
	}
	return nil, nil
}

func (r proveedorRepo) ListByEmpresa(ctx context.Context, empresaID, search string, limit, offset int) ([]*entity.Proveedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Proveedor
	for _, x := range r.s.proveedores {
		if x.EmpresaID == empresaID && (search == "" || contains(x.RazonSocial, search) || contains(x.NumeroDocumento, search)) {
			x := x
			out = append(out, &x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RazonSocial < out[j].RazonSocial })
	return page(out, limit, offset), nil
}

func (r proveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.proveedores[p.ID]; !ok || x.EmpresaID != p.EmpresaID {
		return domain.ErrNotFound
	}
	for _, x := range r.s.proveedores {
		if x.ID != p.ID && x.EmpresaID == p.EmpresaID && x.TipoDocumento == p.TipoDocumento && x.NumeroDocumento == p.NumeroDocumento {
			return fmt.Errorf("%w: proveedor %s", domain.ErrDuplicate, p.NumeroDocumento)
		}
	}
	r.s.proveedores[p.ID] = *p
	return nil
}

func (r proveedorRepo) Delete(ctx context.Context, empresaID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.proveedores[id]
	if !ok || x.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	delete(r.s.proveedores, id)
	return nil
}

type personalRepo struct{ s *Store }

// Personal repositorio de personal.
func (s *Store) Personal() repository.PersonalRepository { return personalRepo{s} }

func (r personalRepo) Create(ctx context.Context, p *entity.Personal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.personal {
		if x.EmpresaID == p.EmpresaID && x.DNI == p.DNI {
			return fmt.Errorf("%w: DNI %s", domain.ErrDuplicate, p.DNI)
		}
	}
	r.s.personal[p.ID] = *p
	return nil
}

func (r personalRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Personal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.personal[id]; ok && x.EmpresaID == empresaID {
		return &x, nil
	}
	return nil, nil
}

func (r personalRepo) ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.Personal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Personal
	for _, x := range r.s.personal {
		if x.EmpresaID == empresaID {
			x := x
			out = append(out, &x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NombreCompleto < out[j].NombreCompleto })
	return page(out, limit, offset), nil
}

func (r personalRepo) Update(ctx context.Context, p *entity.Personal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.personal[p.ID]; !ok || x.EmpresaID != p.EmpresaID {
		return domain.ErrNotFound
	}
	r.s.personal[p.ID] = *p
	return nil
}

func (r personalRepo) Delete(ctx context.Context, empresaID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.personal[id]
	if !ok || x.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	for _, o := range r.s.operadores {
		if o.PersonalID == id {
			return fmt.Errorf("%w: el trabajador figura como operador", domain.ErrConflict)
		}
	}
	delete(r.s.personal, id)
	return nil
}

// ---- producción ----

type hornoRepo struct{ s *Store }

// Hornos repositorio de hornos.
func (s *Store) Hornos() repository.HornoRepository { return hornoRepo{s} }

func (r hornoRepo) Create(ctx context.Context, h *entity.Horno) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.hornos {
		if x.EmpresaID == h.EmpresaID && strings.EqualFold(x.Nombre, h.Nombre) {
			return fmt.Errorf("%w: horno %q", domain.ErrDuplicate, h.Nombre)
		}
	}
	r.s.hornos[h.ID] = *h
	return nil
}

func (r hornoRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Horno, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.hornos[id]; ok && x.EmpresaID == empresaID {
		return &x, nil
	}
	return nil, nil
}

func (r hornoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Horno, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Horno
	for _, x := range r.s.hornos {
		if x.EmpresaID == empresaID {
			x := x
			out = append(out, &x)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r hornoRepo) Update(ctx context.Context, h *entity.Horno) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.hornos[h.ID]; !ok || x.EmpresaID != h.EmpresaID {
		return domain.ErrNotFound
	}
	r.s.hornos[h.ID] = *h
	return nil
}

func (r hornoRepo) Delete(ctx context.Context, empresaID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.hornos[id]
	if !ok || x.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	for _, c := range r.s.cocciones {
		if c.HornoID == id {
			return fmt.Errorf("%w: el horno tiene cocciones", domain.ErrConflict)
		}
	}
	delete(r.s.hornos, id)
	return nil
}

type coccionRepo struct{ s *Store }

// Cocciones repositorio de cocciones.
func (s *Store) Cocciones() repository.CoccionRepository { return coccionRepo{s} }

func (r coccionRepo) withHorno(c entity.Coccion) *entity.Coccion {
	c.HornoNombre = r.s.hornos[c.HornoID].Nombre
	return &c
}

func (r coccionRepo) Create(ctx context.Context, c *entity.Coccion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.Estado == entity.CoccionEnProceso {
		for _, x := range r.s.cocciones {
			if x.HornoID == c.HornoID && x.Estado == entity.CoccionEnProceso {
				return fmt.Errorf("%w: el horno ya tiene una cocción en proceso", domain.ErrConflict)
			}
		}
	}
	r.s.cocciones[c.ID] = *c
	return nil
}

func (r coccionRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Coccion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.cocciones[id]; ok && x.EmpresaID == empresaID {
		return r.withHorno(x), nil
	}
	return nil, nil
}

func (r coccionRepo) List(ctx context.Context, empresaID string, f repository.CoccionFilter) ([]*entity.Coccion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Coccion
	for _, x := range r.s.cocciones {
		if x.EmpresaID != empresaID || (f.HornoID != "" && x.HornoID != f.HornoID) || (f.Estado != "" && x.Estado != f.Estado) {
			continue
		}
		out = append(out, r.withHorno(x))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaEncendido.After(out[j].FechaEncendido) })
	return page(out, f.Limit, f.Offset), nil
}

func (r coccionRepo) Update(ctx context.Context, c *entity.Coccion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.cocciones[c.ID]; !ok || x.EmpresaID != c.EmpresaID {
		return domain.ErrNotFound
	}
	r.s.cocciones[c.ID] = *c
	return nil
}

func (r coccionRepo) Delete(ctx context.Context, empresaID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	x, ok := r.s.cocciones[id]
	if !ok || x.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	delete(r.s.cocciones, id)
	for oid, o := range r.s.operadores {
		if o.CoccionID == id {
			delete(r.s.operadores, oid)
		}
	}
	return nil
}

func (r coccionRepo) GetEnProcesoByHorno(ctx context.Context, empresaID, hornoID string) (*entity.Coccion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.cocciones {
		if x.EmpresaID == empresaID && x.HornoID == hornoID && x.Estado == entity.CoccionEnProceso {
			return r.withHorno(x), nil
		}
	}
	return nil, nil
}

func (r coccionRepo) AddOperador(ctx context.Context, op *entity.CoccionOperador) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.operadores[op.ID] = *op
	return nil
}

func (r coccionRepo) ListOperadores(ctx context.Context, coccionID string) ([]*entity.CoccionOperador, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CoccionOperador
	for _, o := range r.s.operadores {
		if o.CoccionID == coccionID {
			o.PersonalNombre = r.s.personal[o.PersonalID].NombreCompleto
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

func (r coccionRepo) DeleteOperador(ctx context.Context, coccionID, operadorID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.operadores[operadorID]
	if !ok || o.CoccionID != coccionID {
		return false, nil
	}
	delete(r.s.operadores, operadorID)
	return true, nil
}

// ---- ventas ----

type ventaRepo struct{ s *Store }

// Ventas repositorio de ventas.
func (s *Store) Ventas() repository.VentaRepository { return ventaRepo{s} }

func (r ventaRepo) withCliente(v entity.Venta) *entity.Venta {
	v.ClienteNombre = r.s.clientes[v.ClienteID].Nombre
	return &v
}

func (r ventaRepo) Create(ctx context.Context, v *entity.Venta) error {
	if err := r.s.fail("CreateVenta"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ventas[v.ID] = *v
	return nil
}

func (r ventaRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.Venta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.ventas[id]; ok && x.EmpresaID == empresaID {
		return r.withCliente(x), nil
	}
	return nil, nil
}

func (r ventaRepo) GetByIDForUpdate(ctx context.Context, empresaID, id string) (*entity.Venta, error) {
	return r.GetByID(ctx, empresaID, id)
}

func (r ventaRepo) Update(ctx context.Context, v *entity.Venta) error {
	if err := r.s.fail("UpdateVenta"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.ventas[v.ID]; !ok || x.EmpresaID != v.EmpresaID {
		return domain.ErrNotFound
	}
	r.s.ventas[v.ID] = *v
	return nil
}

func (r ventaRepo) List(ctx context.Context, empresaID string, f repository.VentaFilter) ([]*entity.Venta, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Venta
	for _, v := range r.s.ventas {
		switch {
		case v.EmpresaID != empresaID,
			f.EstadoVenta != "" && v.EstadoVenta != f.EstadoVenta,
			f.EstadoPago != "" && v.EstadoPago != f.EstadoPago,
			f.EstadoEntrega != "" && v.EstadoEntrega != f.EstadoEntrega,
			f.ClienteID != "" && v.ClienteID != f.ClienteID,
			f.Desde != nil && v.FechaVenta.Before(*f.Desde),
			f.Hasta != nil && v.FechaVenta.After(*f.Hasta):
			continue
		}
		out = append(out, r.withCliente(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaVenta.After(out[j].FechaVenta) })
	return page(out, f.Limit, f.Offset), len(out), nil
}

func (r ventaRepo) ListConComprobante(ctx context.Context, empresaID string, f repository.VentaFilter) ([]*entity.Venta, error) {
	list, _, err := r.List(ctx, empresaID, f)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range list {
		if c, ok := r.s.comprob[v.ID]; ok {
			v.Comprobante = &c
		}
	}
	return list, nil
}

func (r ventaRepo) CreateDetalle(ctx context.Context, d *entity.DetalleVenta) error {
	if err := r.s.fail("CreateDetalle"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.detalles[d.ID] = *d
	return nil
}

func (r ventaRepo) UpdateDetalle(ctx context.Context, d *entity.DetalleVenta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if x, ok := r.s.detalles[d.ID]; !ok || x.VentaID != d.VentaID {
		return domain.ErrNotFound
	}
	r.s.detalles[d.ID] = *d
	return nil
}

func (r ventaRepo) DeleteDetalle(ctx context.Context, ventaID, detalleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, de := range r.s.detEntrega {
		if de.DetalleVentaID == detalleID {
			return fmt.Errorf("%w: el detalle tiene entregas", domain.ErrConflict)
		}
	}
	delete(r.s.detalles, detalleID)
	return nil
}

func (r ventaRepo) ListDetalles(ctx context.Context, ventaID string) ([]*entity.DetalleVenta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.DetalleVenta
	for _, d := range r.s.detalles {
		if d.VentaID == ventaID {
			d.ProductoNombre = r.s.productos[d.ProductoID].Nombre
			d := d
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductoNombre != out[j].ProductoNombre {
			return out[i].ProductoNombre < out[j].ProductoNombre
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r ventaRepo) CreateServicio(ctx context.Context, sv *entity.ServicioVenta) error {
	if err := r.s.fail("CreateServicio"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.servicios[sv.ID] = *sv
	return nil
}

func (r ventaRepo) DeleteServicios(ctx context.Context, ventaID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, sv := range r.s.servicios {
		if sv.VentaID == ventaID {
			delete(r.s.servicios, id)
		}
	}
	return nil
}

func (r ventaRepo) ListServicios(ctx context.Context, ventaID string) ([]*entity.ServicioVenta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ServicioVenta
	for _, sv := range r.s.servicios {
		if sv.VentaID == ventaID {
			sv := sv
			out = append(out, &sv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tipo < out[j].Tipo })
	return out, nil
}

func (r ventaRepo) CreateComprobante(ctx context.Context, c *entity.ComprobanteVenta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comprob[c.VentaID]; ok {
		return fmt.Errorf("%w: la venta ya tiene comprobante", domain.ErrDuplicate)
	}
	r.s.comprob[c.VentaID] = *c
	return nil
}

func (r ventaRepo) GetComprobante(ctx context.Context, ventaID string) (*entity.ComprobanteVenta, error) {
	if err := r.s.fail("GetComprobante"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.comprob[ventaID]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r ventaRepo) UpdateComprobante(ctx context.Context, c *entity.ComprobanteVenta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.comprob[c.VentaID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.OpGravada, cur.IGV, cur.Total = c.OpGravada, c.IGV, c.Total
	r.s.comprob[c.VentaID] = cur
	return nil
}

type numeracionRepo struct{ s *Store }

// Numeracion repositorio de correlativos.
func (s *Store) Numeracion() repository.NumeracionRepository { return numeracionRepo{s} }

func (r numeracionRepo) Siguiente(ctx context.Context, empresaID, tipo string) (string, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	serie, ok := entity.SerieDefecto[tipo]
	if !ok {
		return "", 0, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, tipo)
	}
	key := empresaID + "|" + tipo
	n, ok := r.s.numeracion[key]
	if !ok {
		n = entity.NumeracionComprobante{EmpresaID: empresaID, Tipo: tipo, Serie: serie}
	}
	n.UltimoNumero++
	r.s.numeracion[key] = n
	return n.Serie, n.UltimoNumero, nil
}

type entregaRepo struct{ s *Store }

// Entregas repositorio de entregas.
func (s *Store) Entregas() repository.EntregaRepository { return entregaRepo{s} }

func (r entregaRepo) Create(ctx context.Context, e *entity.EntregaVenta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	cp.Detalles = nil
	r.s.entregas[e.ID] = cp
	return nil
}

func (r entregaRepo) CreateDetalle(ctx context.Context, d *entity.DetalleEntregaVenta) error {
	if err := r.s.fail("CreateDetalleEntrega"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.detalles[d.DetalleVentaID]; !ok {
		return fmt.Errorf("%w: detalle de venta inexistente", domain.ErrInvalidInput)
	}
	r.s.detEntrega[d.ID] = *d
	return nil
}

func (r entregaRepo) fill(e entity.EntregaVenta) *entity.EntregaVenta {
	for _, d := range r.s.detEntrega {
		if d.EntregaID == e.ID {
			dv := r.s.detalles[d.DetalleVentaID]
			d.ProductoNombre = r.s.productos[dv.ProductoID].Nombre
			e.Detalles = append(e.Detalles, d)
		}
	}
	sort.Slice(e.Detalles, func(i, j int) bool { return e.Detalles[i].ProductoNombre < e.Detalles[j].ProductoNombre })
	return &e
}

func (r entregaRepo) GetByID(ctx context.Context, empresaID, id string) (*entity.EntregaVenta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entregas[id]
	if !ok || r.s.ventas[e.VentaID].EmpresaID != empresaID {
		return nil, nil
	}
	return r.fill(e), nil
}

func (r entregaRepo) ListByVenta(ctx context.Context, ventaID string) ([]*entity.EntregaVenta, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.EntregaVenta
	for _, e := range r.s.entregas {
		if e.VentaID == ventaID {
			out = append(out, r.fill(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaEntrega.Before(out[j].FechaEntrega) })
	return out, nil
}

func (r entregaRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.entregas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.entregas, id)
	for did, d := range r.s.detEntrega {
		if d.EntregaID == id {
			delete(r.s.detEntrega, did)
		}
	}
	return nil
}

func (r entregaRepo) EntregadoPorDetalle(ctx context.Context, ventaID string) (map[string]decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]decimal.Decimal{}
	for _, d := range r.s.detEntrega {
		if r.s.entregas[d.EntregaID].VentaID == ventaID {
			out[d.DetalleVentaID] = out[d.DetalleVentaID].Add(d.Cantidad)
		}
	}
	return out, nil
}

// ---- dashboard ----

type dashboardRepo struct{ s *Store }

// Dashboard repositorio de indicadores.
func (s *Store) Dashboard() repository.DashboardRepository { return dashboardRepo{s} }

func (r dashboardRepo) VentasEnRango(ctx context.Context, empresaID string, desde, hasta time.Time) (int, decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, total := 0, decimal.Zero
	for _, v := range r.s.ventas {
		if v.EmpresaID == empresaID && v.EstadoVenta != entity.VentaAnulada &&
			!v.FechaVenta.Before(desde) && !v.FechaVenta.After(hasta) {
			n++
			total = total.Add(v.Total)
		}
	}
	return n, total, nil
}

func (r dashboardRepo) SaldoPorCobrar(ctx context.Context, empresaID string) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, v := range r.s.ventas {
		if v.EmpresaID == empresaID && v.EstadoVenta == entity.VentaActiva {
			total = total.Add(v.SaldoPendiente)
		}
	}
	return total, nil
}

func (r dashboardRepo) VentasPendientesEntrega(ctx context.Context, empresaID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, v := range r.s.ventas {
		if v.EmpresaID == empresaID && v.EstadoVenta == entity.VentaActiva && v.EstadoEntrega != entity.EntregaEntregado {
			n++
		}
	}
	return n, nil
}

func (r dashboardRepo) CoccionesEnProceso(ctx context.Context, empresaID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.cocciones {
		if c.EmpresaID == empresaID && c.Estado == entity.CoccionEnProceso {
			n++
		}
	}
	return n, nil
}

// ---- semillas ----

// Fixture ids y datos básicos de una empresa de prueba.
type Fixture struct {
	EmpresaID    string
	RolID        string
	UsuarioID    string
	ClienteID    string // DNI
	ClienteRUCID string
	ProductoID   string // King Kong, 1200.00 el millar
	Producto2ID  string // Pandereta, 800.00 el millar
}

// Seed crea una empresa con rol administrador, usuario, dos clientes y dos productos.
func (s *Store) Seed(passwordHash string, permisos []string) Fixture {
	now := time.Now()
	f := Fixture{
		EmpresaID: uuid.NewString(), RolID: uuid.NewString(), UsuarioID: uuid.NewString(),
		ClienteID: uuid.NewString(), ClienteRUCID: uuid.NewString(),
		ProductoID: uuid.NewString(), Producto2ID: uuid.NewString(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.empresas[f.EmpresaID] = entity.Empresa{ID: f.EmpresaID, RazonSocial: "LADRILLERA SAN PEDRO SAC", RUC: "20131312955", CreatedAt: now, UpdatedAt: now}
	s.roles[f.RolID] = entity.Rol{ID: f.RolID, EmpresaID: f.EmpresaID, Nombre: entity.RolAdministrador, CreatedAt: now, UpdatedAt: now}
	s.rolPermisos[f.RolID] = append([]string(nil), permisos...)
	s.usuarios[f.UsuarioID] = entity.Usuario{
		ID: f.UsuarioID, EmpresaID: f.EmpresaID, NombreCompleto: "Administrador", Usuario: "admin",
		PasswordHash: passwordHash, RolID: f.RolID, Activo: true, CreatedAt: now, UpdatedAt: now,
	}
	s.clientes[f.ClienteID] = entity.Cliente{ID: f.ClienteID, EmpresaID: f.EmpresaID, TipoDocumento: "DNI", NumeroDocumento: "46027897", Nombre: "JUAN PEREZ QUISPE", CreatedAt: now, UpdatedAt: now}
	s.clientes[f.ClienteRUCID] = entity.Cliente{ID: f.ClienteRUCID, EmpresaID: f.EmpresaID, TipoDocumento: "RUC", NumeroDocumento: "20100070970", Nombre: "CONSTRUCTORA ANDINA SA", CreatedAt: now, UpdatedAt: now}
	s.productos[f.ProductoID] = entity.Producto{ID: f.ProductoID, EmpresaID: f.EmpresaID, Nombre: "King Kong 18 huecos", UnidadMedida: entity.UnidadMillar, PrecioUnitario: decimal.NewFromInt(1200), Activo: true, CreatedAt: now, UpdatedAt: now}
	s.productos[f.Producto2ID] = entity.Producto{ID: f.Producto2ID, EmpresaID: f.EmpresaID, Nombre: "Pandereta", UnidadMedida: entity.UnidadMillar, PrecioUnitario: decimal.NewFromInt(800), Activo: true, CreatedAt: now, UpdatedAt: now}
	return f
}

// AddEmpresa crea otra empresa vacía (para pruebas de aislamiento entre tenants).
func (s *Store) AddEmpresa(ruc string) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.empresas[id] = entity.Empresa{ID: id, RazonSocial: "OTRA EMPRESA", RUC: ruc, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	return id
}

// CountVentas número de ventas almacenadas.
func (s *Store) CountVentas() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ventas)
}

// Numero último correlativo emitido del tipo.
func (s *Store) Numero(empresaID, tipo string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numeracion[empresaID+"|"+tipo].UltimoNumero
}
