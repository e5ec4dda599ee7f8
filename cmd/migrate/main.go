// Comando migrate: aplica o revierte las migraciones embebidas.
//
//	go run ./cmd/migrate up|down|version
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brickapp/brickapp-api/internal/infrastructure/postgres"
	"github.com/brickapp/brickapp-api/pkg/config"
	"github.com/brickapp/brickapp-api/pkg/logger"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "uso: %s up|down|version\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")
	dsn := cfg.DB.ConnectionString()

	switch flag.Arg(0) {
	case "up":
		if err := postgres.Migrate(dsn); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
	case "down":
		if err := postgres.MigrateDown(dsn); err != nil {
			log.Fatal().Err(err).Msg("revertir migraciones")
		}
	case "version":
	default:
		flag.Usage()
		os.Exit(2)
	}

	v, dirty, err := postgres.MigrationVersion(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("leer versión")
	}
	log.Info().Uint("version", v).Bool("dirty", dirty).Msg("estado de migraciones")
}
