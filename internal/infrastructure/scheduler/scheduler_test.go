package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickapp/brickapp-api/pkg/logger"
)

func TestAdd(t *testing.T) {
	s := New(logger.Nop())
	require.NoError(t, s.Add(Job{Name: "purga", Spec: "@every 10m", Run: func(context.Context) error { return nil }}))
	assert.Equal(t, 1, s.Len())

	assert.Error(t, s.Add(Job{Name: "mala", Spec: "cada rato", Run: func(context.Context) error { return nil }}))
	assert.Error(t, s.Add(Job{Name: "vacia", Spec: "@hourly"}))
	assert.Equal(t, 1, s.Len())
}

func TestRun(t *testing.T) {
	s := New(logger.Nop())
	n := 0
	s.run(Job{Name: "ok", Run: func(ctx context.Context) error {
		_, tieneDeadline := ctx.Deadline()
		assert.True(t, tieneDeadline)
		n++
		return nil
	}})
	s.run(Job{Name: "falla", Run: func(context.Context) error { n++; return errors.New("boom") }})
	assert.Equal(t, 2, n)

	s.Start()
	s.Stop(context.Background())
}
