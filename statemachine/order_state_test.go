package statemachine

import (
	"testing"

	"food-marketplace-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionForwardOnly(t *testing.T) {
	require.NoError(t, CanTransition(models.EstadoPendiente, models.EstadoPreparando))
	require.NoError(t, CanTransition(models.EstadoPreparando, models.EstadoEntregado))
	require.NoError(t, CanTransition(models.EstadoPendiente, models.EstadoCancelado))
}

func TestCancelOnlyWhilePending(t *testing.T) {
	assert.Error(t, CanTransition(models.EstadoPreparando, models.EstadoCancelado))
	assert.Error(t, CanTransition(models.EstadoEntregado, models.EstadoCancelado))
}

func TestTerminalStatesAreImmutable(t *testing.T) {
	terminales := []models.EstadoOrden{models.EstadoEntregado, models.EstadoCancelado}
	destinos := []models.EstadoOrden{
		models.EstadoPendiente, models.EstadoPreparando,
		models.EstadoEntregado, models.EstadoCancelado,
	}
	for _, desde := range terminales {
		assert.True(t, EsTerminal(desde))
		for _, hacia := range destinos {
			assert.Error(t, CanTransition(desde, hacia), "%s → %s debería fallar", desde, hacia)
		}
	}
}

func TestNoBackwardTransitions(t *testing.T) {
	assert.Error(t, CanTransition(models.EstadoPreparando, models.EstadoPendiente))
	assert.Error(t, CanTransition(models.EstadoEntregado, models.EstadoPreparando))
	assert.Error(t, CanTransition(models.EstadoPendiente, models.EstadoEntregado))
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.EstadoOrden{models.EstadoPreparando, models.EstadoCancelado},
		ValidTransitionsFrom(models.EstadoPendiente))
	assert.Empty(t, ValidTransitionsFrom(models.EstadoCancelado))
}
