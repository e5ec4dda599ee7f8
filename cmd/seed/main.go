// Comando seed: da de alta una empresa con su rol Administrador y el usuario administrador.
//
//	go run ./cmd/seed -ruc 20131312955 -razon-social "Ladrillera San Pedro SAC" -usuario admin -password ********
//
// Los valores por defecto se leen de SEED_* en el entorno.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/brickapp/brickapp-api/internal/application/auth"
	"github.com/brickapp/brickapp-api/internal/application/onboarding"
	"github.com/brickapp/brickapp-api/internal/domain"
	"github.com/brickapp/brickapp-api/internal/infrastructure/postgres"
	"github.com/brickapp/brickapp-api/pkg/config"
	"github.com/brickapp/brickapp-api/pkg/logger"
)

func main() {
	var (
		ruc         = flag.String("ruc", os.Getenv("SEED_RUC"), "RUC de la empresa (11 dígitos)")
		razonSocial = flag.String("razon-social", os.Getenv("SEED_RAZON_SOCIAL"), "Razón social")
		direccion   = flag.String("direccion", os.Getenv("SEED_DIRECCION"), "Dirección fiscal")
		telefono    = flag.String("telefono", os.Getenv("SEED_TELEFONO"), "Teléfono")
		email       = flag.String("email", os.Getenv("SEED_EMAIL"), "Email de contacto")
		nombre      = flag.String("nombre", envOr("SEED_ADMIN_NOMBRE", "Administrador"), "Nombre del administrador")
		usuario     = flag.String("usuario", envOr("SEED_ADMIN_USUARIO", "admin"), "Login del administrador")
		password    = flag.String("password", os.Getenv("SEED_ADMIN_PASSWORD"), "Contraseña del administrador (mínimo 8)")
		migrar      = flag.Bool("migrate", true, "Aplicar migraciones antes del alta")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *migrar {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	permisoSvc := auth.NewPermisoService(postgres.NewPermisoRepository(pool), postgres.NewRolRepository(pool))
	uc := onboarding.NewUseCase(postgres.NewTxRunner(pool), permisoSvc)
	res, err := uc.Onboard(ctx, onboarding.Input{
		RUC:           *ruc,
		RazonSocial:   *razonSocial,
		Direccion:     *direccion,
		Telefono:      *telefono,
		Email:         *email,
		AdminNombre:   *nombre,
		AdminUsuario:  *usuario,
		AdminPassword: *password,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		log.Warn().Err(err).Str("ruc", *ruc).Msg("la empresa o el usuario ya existen, nada que hacer")
		return
	case err != nil:
		log.Fatal().Err(err).Msg("alta de empresa")
	}
	log.Info().
		Str("empresa_id", res.EmpresaID).
		Str("rol_id", res.RolID).
		Str("usuario_id", res.UsuarioID).
		Int("permisos", res.Permisos).
		Msg("empresa creada")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
