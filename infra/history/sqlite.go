package history

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/kilianp07/routeeta/core/model"
	"github.com/kilianp07/routeeta/core/prediction"
)

// DefaultTable is the table queried when none is configured.
const DefaultTable = "delay_history"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads samples from a table of a SQLite database.
type SQLiteSource struct {
	Path  string
	Table string
}

// Load queries every row of the table. Column presence is validated before
// any row is read.
func (s SQLiteSource) Load(ctx context.Context) ([]model.TrainingSample, error) {
	table := s.Table
	if table == "" {
		table = DefaultTable
	}
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(cols)
	if err != nil {
		return nil, err
	}
	dest := make([]any, len(cols))
	cells := make([]sql.NullFloat64, len(cols))
	var discard any
	for i := range dest {
		dest[i] = &discard
	}
	for _, c := range model.RequiredColumns {
		dest[idx[c]] = &cells[idx[c]]
	}

	var out []model.TrainingSample
	for line := 1; rows.Next(); line++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", prediction.ErrInvalidTrainingData, line, err)
		}
		vals := make([]float64, len(model.RequiredColumns))
		for i, c := range model.RequiredColumns {
			cell := cells[idx[c]]
			if !cell.Valid {
				return nil, fmt.Errorf("%w: row %d: missing %s", prediction.ErrInvalidTrainingData, line, c)
			}
			vals[i] = cell.Float64
		}
		out = append(out, model.TrainingSample{
			DistanceKm:    vals[0],
			WeatherFactor: vals[1],
			TrafficFactor: vals[2],
			DelayMinutes:  vals[3],
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
