// Package history loads historical delay observations used to train the
// delay model.
package history

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kilianp07/routeeta/core/factory"
	"github.com/kilianp07/routeeta/core/model"
	"github.com/kilianp07/routeeta/core/prediction"
)

// Source yields training samples.
type Source interface {
	Load(ctx context.Context) ([]model.TrainingSample, error)
}

var sourceRegistry = factory.NewRegistry[Source]()

func init() {
	_ = sourceRegistry.Register("csv", func(conf map[string]any) (Source, error) {
		var c struct {
			Path string `json:"path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, fmt.Errorf("csv history: path is required")
		}
		return CSVSource{Path: c.Path}, nil
	})
	_ = sourceRegistry.Register("sqlite", func(conf map[string]any) (Source, error) {
		c := struct {
			Path  string `json:"path"`
			Table string `json:"table"`
		}{Table: DefaultTable}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		if c.Path == "" {
			return nil, fmt.Errorf("sqlite history: path is required")
		}
		return SQLiteSource{Path: c.Path, Table: c.Table}, nil
	})
}

// New builds a Source from configuration.
func New(cfg factory.ModuleConfig) (Source, error) {
	return sourceRegistry.Create(cfg)
}

// columnIndex maps each required column to its position in header. Header
// names are matched case-insensitively; extra columns are ignored.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, c := range model.RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", prediction.ErrInvalidTrainingData, strings.Join(missing, ", "))
	}
	return idx, nil
}

// parseRow converts one text row into a sample.
func parseRow(idx map[string]int, row []string, line int) (model.TrainingSample, error) {
	vals := make([]float64, len(model.RequiredColumns))
	for i, c := range model.RequiredColumns {
		pos := idx[c]
		if pos >= len(row) || strings.TrimSpace(row[pos]) == "" {
			return model.TrainingSample{}, fmt.Errorf("%w: row %d: missing %s", prediction.ErrInvalidTrainingData, line, c)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[pos]), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return model.TrainingSample{}, fmt.Errorf("%w: row %d: %s=%q is not a finite number", prediction.ErrInvalidTrainingData, line, c, row[pos])
		}
		vals[i] = v
	}
	return model.TrainingSample{
		DistanceKm:    vals[0],
		WeatherFactor: vals[1],
		TrafficFactor: vals[2],
		DelayMinutes:  vals[3],
	}, nil
}
