package statemachine

import (
	"food-marketplace-api/apperrors"
	"food-marketplace-api/models"
)

// validTransitions is the authoritative lifecycle definition: orders only
// move forward, and cancellation is possible while pending only.
var validTransitions = map[models.EstadoOrden][]models.EstadoOrden{
	models.EstadoPendiente:  {models.EstadoPreparando, models.EstadoCancelado},
	models.EstadoPreparando: {models.EstadoEntregado},
	models.EstadoEntregado:  {},
	models.EstadoCancelado:  {},
}

// ValidTransitionsFrom returns all valid next states from a given state.
func ValidTransitionsFrom(estado models.EstadoOrden) []models.EstadoOrden {
	return validTransitions[estado]
}

// EsTerminal reports whether estado admits no further transitions.
func EsTerminal(estado models.EstadoOrden) bool {
	return len(validTransitions[estado]) == 0
}

// CanTransition checks whether an order may move from one state to another.
func CanTransition(from, to models.EstadoOrden) error {
	for _, siguiente := range validTransitions[from] {
		if siguiente == to {
			return nil
		}
	}
	return apperrors.InvalidTransition(string(from), string(to))
}
