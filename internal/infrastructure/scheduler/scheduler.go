// Package scheduler tareas de mantenimiento periódicas (purga de cachés y limitadores en memoria).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/brickapp/brickapp-api/internal/infrastructure/metrics"
	"github.com/brickapp/brickapp-api/pkg/logger"
)

// Job tarea programada. Spec acepta la sintaxis de cron estándar y descriptores como "@every 10m".
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Scheduler envoltorio de robfig/cron con logging y métricas por ejecución.
type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Logger
	timeout time.Duration
}

// New crea el scheduler. Las ejecuciones solapadas de una misma tarea se omiten.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		log:     log.Named("scheduler"),
		timeout: time.Minute,
	}
}

// Add registra una tarea.
func (s *Scheduler) Add(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("scheduler: la tarea %q no tiene función", job.Name)
	}
	if _, err := s.cron.AddFunc(job.Spec, func() { s.run(job) }); err != nil {
		return fmt.Errorf("scheduler: tarea %q: %w", job.Name, err)
	}
	return nil
}

func (s *Scheduler) run(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	start := time.Now()
	err := job.Run(ctx)
	d := time.Since(start)
	metrics.JobRun(job.Name, d, err == nil)
	if err != nil {
		s.log.Error().Err(err).Str("job", job.Name).Msg("tarea programada fallida")
		return
	}
	s.log.Debug().Str("job", job.Name).Dur("duracion", d).Msg("tarea programada ejecutada")
}

// Start arranca el scheduler en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el scheduler y espera a que terminen las tareas en curso o venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Len cantidad de tareas registradas.
func (s *Scheduler) Len() int { return len(s.cron.Entries()) }
