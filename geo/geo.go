package geo

import "math"

const radioTierraMetros = 6371000.0

// Distancia returns the great-circle distance in meters between two
// lat/lng points (haversine formula). The sqlite store has no native
// geo-near operator, so proximity queries compute distances here.
func Distancia(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(g float64) float64 { return g * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return radioTierraMetros * c
}
