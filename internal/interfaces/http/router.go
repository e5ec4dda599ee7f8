package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/brickapp/brickapp-api/internal/application/analytics"
	"github.com/brickapp/brickapp-api/internal/application/auth"
	"github.com/brickapp/brickapp-api/internal/application/consulta"
	"github.com/brickapp/brickapp-api/internal/application/usecase"
	"github.com/brickapp/brickapp-api/internal/application/venta"
	"github.com/brickapp/brickapp-api/internal/infrastructure/metrics"
	p "github.com/brickapp/brickapp-api/pkg/permisos"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	PermisoSvc  *auth.PermisoService
	EmpresaUC   *usecase.EmpresaUseCase
	UsuarioUC   *usecase.UsuarioUseCase
	RolUC       *usecase.RolUseCase
	ProductoUC  *usecase.ProductoUseCase
	ClienteUC   *usecase.ClienteUseCase
	ProveedorUC *usecase.ProveedorUseCase
	PersonalUC  *usecase.PersonalUseCase
	HornoUC     *usecase.HornoUseCase
	CoccionUC   *usecase.CoccionUseCase
	VentaUC     *venta.UseCase
	EntregaUC   *venta.EntregaUseCase
	DocumentoUC *venta.DocumentoUseCase
	ConsultaUC  *consulta.UseCase
	DashboardUC *analytics.DashboardUseCase

	JWTSecret    string
	Revocations  RevocationChecker
	LoginLimiter *RateLimiter
	CookieSecure bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.CookieSecure)
	authGroup := api.Group("/auth")
	if deps.LoginLimiter != nil {
		authGroup.Post("/login", deps.LoginLimiter.Handler(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	// Rutas protegidas (Bearer o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Revocations))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	permisoHandler := NewPermisoHandler(deps.PermisoSvc)
	protected.Get("/permiso", RequirePermission(p.RolesVer, p.RolesGestionar), permisoHandler.Catalogo)

	// Empresa
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)
	protected.Get("/empresa", RequirePermission(p.EmpresaVer, p.EmpresaEditar), empresaHandler.Get)
	protected.Put("/empresa", RequirePermission(p.EmpresaEditar), empresaHandler.Update)

	// Usuarios
	usuarios := protected.Group("/usuario")
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Get("/", RequirePermission(p.UsuariosVer), usuarioHandler.List)
	usuarios.Post("/", RequirePermission(p.UsuariosCrear), usuarioHandler.Create)
	usuarios.Get("/:id", RequirePermission(p.UsuariosVer), usuarioHandler.GetByID)
	usuarios.Put("/:id", RequirePermission(p.UsuariosEditar), usuarioHandler.Update)
	usuarios.Put("/:id/password", RequirePermission(p.UsuariosEditar), usuarioHandler.ChangePassword)
	usuarios.Delete("/:id", RequirePermission(p.UsuariosEliminar), usuarioHandler.Delete)

	// Roles
	roles := protected.Group("/rol")
	rolHandler := NewRolHandler(deps.RolUC)
	roles.Get("/", RequirePermission(p.RolesVer, p.RolesGestionar), rolHandler.List)
	roles.Post("/", RequirePermission(p.RolesGestionar), rolHandler.Create)
	roles.Get("/:id", RequirePermission(p.RolesVer, p.RolesGestionar), rolHandler.GetByID)
	roles.Put("/:id", RequirePermission(p.RolesGestionar), rolHandler.Update)
	roles.Put("/:id/permisos", RequirePermission(p.RolesGestionar), rolHandler.SetPermisos)
	roles.Delete("/:id", RequirePermission(p.RolesGestionar), rolHandler.Delete)

	// Catálogos
	productos := protected.Group("/producto")
	productoHandler := NewProductoHandler(deps.ProductoUC)
	productos.Get("/", RequirePermission(p.ProductosVer, p.VentasCrear), productoHandler.List)
	productos.Post("/", RequirePermission(p.ProductosGestionar), productoHandler.Create)
	productos.Get("/:id", RequirePermission(p.ProductosVer, p.VentasCrear), productoHandler.GetByID)
	productos.Put("/:id", RequirePermission(p.ProductosGestionar), productoHandler.Update)
	productos.Delete("/:id", RequirePermission(p.ProductosGestionar), productoHandler.Delete)

	clientes := protected.Group("/cliente")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Get("/", RequirePermission(p.ClientesVer, p.VentasCrear), clienteHandler.List)
	clientes.Post("/", RequirePermission(p.ClientesGestionar), clienteHandler.Create)
	clientes.Get("/:id", RequirePermission(p.ClientesVer, p.VentasCrear), clienteHandler.GetByID)
	clientes.Put("/:id", RequirePermission(p.ClientesGestionar), clienteHandler.Update)
	clientes.Delete("/:id", RequirePermission(p.ClientesGestionar), clienteHandler.Delete)

	proveedores := protected.Group("/proveedor")
	proveedorHandler := NewProveedorHandler(deps.ProveedorUC)
	proveedores.Get("/", RequirePermission(p.ProveedoresVer), proveedorHandler.List)
	proveedores.Post("/", RequirePermission(p.ProveedoresGestionar), proveedorHandler.Create)
	proveedores.Get("/:id", RequirePermission(p.ProveedoresVer), proveedorHandler.GetByID)
	proveedores.Put("/:id", RequirePermission(p.ProveedoresGestionar), proveedorHandler.Update)
	proveedores.Delete("/:id", RequirePermission(p.ProveedoresGestionar), proveedorHandler.Delete)

	personal := protected.Group("/personal")
	personalHandler := NewPersonalHandler(deps.PersonalUC)
	personal.Get("/", RequirePermission(p.PersonalVer, p.CoccionGestionar), personalHandler.List)
	personal.Post("/", RequirePermission(p.PersonalGestionar), personalHandler.Create)
	personal.Get("/:id", RequirePermission(p.PersonalVer, p.CoccionGestionar), personalHandler.GetByID)
	personal.Put("/:id", RequirePermission(p.PersonalGestionar), personalHandler.Update)
	personal.Delete("/:id", RequirePermission(p.PersonalGestionar), personalHandler.Delete)

	// Producción
	hornos := protected.Group("/horno")
	hornoHandler := NewHornoHandler(deps.HornoUC)
	hornos.Get("/", RequirePermission(p.HornosVer, p.CoccionGestionar), hornoHandler.List)
	hornos.Post("/", RequirePermission(p.HornosGestionar), hornoHandler.Create)
	hornos.Get("/:id", RequirePermission(p.HornosVer, p.CoccionGestionar), hornoHandler.GetByID)
	hornos.Put("/:id", RequirePermission(p.HornosGestionar), hornoHandler.Update)
	hornos.Delete("/:id", RequirePermission(p.HornosGestionar), hornoHandler.Delete)

	cocciones := protected.Group("/coccion")
	coccionHandler := NewCoccionHandler(deps.CoccionUC)
	cocciones.Get("/", RequirePermission(p.CoccionVer), coccionHandler.List)
	cocciones.Post("/", RequirePermission(p.CoccionGestionar), coccionHandler.Create)
	cocciones.Get("/:id", RequirePermission(p.CoccionVer), coccionHandler.GetByID)
	cocciones.Put("/:id", RequirePermission(p.CoccionGestionar), coccionHandler.Update)
	cocciones.Put("/:id/finalizar", RequirePermission(p.CoccionGestionar), coccionHandler.Finalizar)
	cocciones.Delete("/:id", RequirePermission(p.CoccionGestionar), coccionHandler.Delete)
	cocciones.Get("/:id/operadores", RequirePermission(p.CoccionVer), coccionHandler.ListOperadores)
	cocciones.Post("/:id/operadores", RequirePermission(p.CoccionGestionar), coccionHandler.AddOperador)
	cocciones.Delete("/:id/operadores/:idOperador", RequirePermission(p.CoccionGestionar), coccionHandler.RemoveOperador)

	// Ventas (export.xlsx antes de /:id)
	ventas := protected.Group("/ventas")
	ventaHandler := NewVentaHandler(deps.VentaUC, deps.DocumentoUC)
	ventas.Get("/export.xlsx", RequirePermission(p.ReportesVer, p.VentasVer), ventaHandler.Exportar)
	ventas.Get("/", RequirePermission(p.VentasVer), ventaHandler.List)
	ventas.Post("/", RequirePermission(p.VentasCrear), ventaHandler.Create)
	ventas.Get("/:id", RequirePermission(p.VentasVer), ventaHandler.GetByID)
	ventas.Put("/:id", RequirePermission(p.VentasEditar), ventaHandler.Update)
	ventas.Delete("/:id", RequirePermission(p.VentasAnular), ventaHandler.Anular)
	ventas.Post("/:id/pagos", RequirePermission(p.VentasPagos), ventaHandler.RegistrarPago)
	ventas.Get("/:id/comprobante.pdf", RequirePermission(p.VentasVer), ventaHandler.ComprobantePDF)
	ventas.Get("/:id/comprobante.xml", RequirePermission(p.VentasVer), ventaHandler.ComprobanteXML)

	entregas := protected.Group("/entrega_venta")
	entregaHandler := NewEntregaHandler(deps.EntregaUC)
	entregas.Get("/", RequirePermission(p.EntregasVer), entregaHandler.ListByVenta)
	entregas.Post("/", RequirePermission(p.EntregasRegistrar), entregaHandler.Registrar)
	entregas.Get("/:id", RequirePermission(p.EntregasVer), entregaHandler.GetByID)
	entregas.Delete("/:id", RequirePermission(p.EntregasEliminar), entregaHandler.Delete)

	// Consultas RENIEC / SUNAT
	consultas := protected.Group("/consulta", RequirePermission(p.ConsultasDocumento, p.ClientesGestionar))
	consultaHandler := NewConsultaHandler(deps.ConsultaUC)
	consultas.Get("/dni/:numero", consultaHandler.DNI)
	consultas.Get("/ruc/:numero", consultaHandler.RUC)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/resumen", RequirePermission(p.ReportesVer), dashboardHandler.Resumen)
}
