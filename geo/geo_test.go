package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanciaMismoPunto(t *testing.T) {
	assert.Zero(t, Distancia(40.4168, -3.7038, 40.4168, -3.7038))
}

func TestDistanciaMadridBarcelona(t *testing.T) {
	// Madrid (Puerta del Sol) → Barcelona (Plaça de Catalunya), ~505 km
	d := Distancia(40.4168, -3.7038, 41.3874, 2.1686)
	assert.InDelta(t, 505000, d, 5000)
}

func TestDistanciaEsSimetrica(t *testing.T) {
	ida := Distancia(40.4168, -3.7038, 41.3874, 2.1686)
	vuelta := Distancia(41.3874, 2.1686, 40.4168, -3.7038)
	assert.InDelta(t, ida, vuelta, 1e-6)
}

func TestDistanciaCorta(t *testing.T) {
	// ~1.11 km por grado de latitud a escala 0.01
	d := Distancia(40.0, -3.7, 40.01, -3.7)
	assert.InDelta(t, 1112, d, 10)
}
