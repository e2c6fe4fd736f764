package history

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/kilianp07/routeeta/core/model"
	"github.com/kilianp07/routeeta/core/prediction"
)

// CSVSource reads samples from a CSV file with a header row.
type CSVSource struct {
	Path string
}

// Load opens the file and parses it with ReadCSV.
func (s CSVSource) Load(ctx context.Context) ([]model.TrainingSample, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(ctx, f)
}

// ReadCSV parses samples from r. The first record is the header.
func ReadCSV(ctx context.Context, r io.Reader) ([]model.TrainingSample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", prediction.ErrInvalidTrainingData)
	}
	if err != nil {
		return nil, err
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}
	var out []model.TrainingSample
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		s, err := parseRow(idx, row, line)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
