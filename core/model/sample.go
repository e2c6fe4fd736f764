package model

// Column names expected in historical delay data.
const (
	ColumnDistance = "distance_km"
	ColumnWeather  = "weather_factor"
	ColumnTraffic  = "traffic_factor"
	ColumnDelay    = "delay_minutes"
)

// FeatureColumns lists the model inputs in evaluation order.
var FeatureColumns = []string{ColumnDistance, ColumnWeather, ColumnTraffic}

// RequiredColumns lists every column a training table must carry.
var RequiredColumns = []string{ColumnDistance, ColumnWeather, ColumnTraffic, ColumnDelay}

// TrainingSample is one historical observation of a delay.
type TrainingSample struct {
	DistanceKm    float64 `json:"distance_km"`
	WeatherFactor float64 `json:"weather_factor"`
	TrafficFactor float64 `json:"traffic_factor"`
	DelayMinutes  float64 `json:"delay_minutes"`
}

// Features returns the sample inputs ordered like FeatureColumns.
func (s TrainingSample) Features() []float64 {
	return []float64{s.DistanceKm, s.WeatherFactor, s.TrafficFactor}
}
