package prediction

import (
	"fmt"
	"math"
)

// Coefficients are the parameters of the linear delay model
//
//	delay_minutes = Intercept + Distance*distance_km + Weather*weather_factor + Traffic*traffic_factor
type Coefficients struct {
	Intercept float64 `json:"intercept"`
	Distance  float64 `json:"distance"`
	Weather   float64 `json:"weather"`
	Traffic   float64 `json:"traffic"`
}

// Eval returns the predicted delay in minutes.
func (c Coefficients) Eval(distanceKm, weather, traffic float64) float64 {
	return c.Intercept + c.Distance*distanceKm + c.Weather*weather + c.Traffic*traffic
}

// Valid reports whether every coefficient is finite.
func (c Coefficients) Valid() bool {
	for _, v := range []float64{c.Intercept, c.Distance, c.Weather, c.Traffic} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (c Coefficients) String() string {
	return fmt.Sprintf("delay = %.4f + %.4f*distance + %.4f*weather + %.4f*traffic",
		c.Intercept, c.Distance, c.Weather, c.Traffic)
}
