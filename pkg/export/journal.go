package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/kilianp07/routeeta/core/journal"
)

var journalHeader = []string{
	"timestamp",
	"prediction_id",
	"route_id",
	"outcome",
	"distance_km",
	"weather_factor",
	"traffic_factor",
	"delay_minutes",
	"eta_minutes",
}

// WriteRecords dispatches journal records to the writer for format.
func WriteRecords(w io.Writer, format string, recs []journal.Record) error {
	switch format {
	case "", FormatTable:
		return writeRecordsTable(w, recs)
	case FormatJSON:
		if recs == nil {
			recs = []journal.Record{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	case FormatCSV:
		return writeRecordsCSV(w, recs)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeRecordsCSV(w io.Writer, recs []journal.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(journalHeader); err != nil {
		return err
	}
	for _, r := range recs {
		rec := []string{
			r.Timestamp.UTC().Format(time.RFC3339),
			r.PredictionID,
			r.RouteID,
			r.Outcome,
			strconv.FormatFloat(r.DistanceKm, 'f', -1, 64),
			strconv.FormatFloat(r.WeatherFactor, 'f', -1, 64),
			strconv.FormatFloat(r.TrafficFactor, 'f', -1, 64),
			strconv.FormatFloat(r.DelayMinutes, 'f', 2, 64),
			minutes(r.ETA),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeRecordsTable(w io.Writer, recs []journal.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "TIME\tROUTE\tOUTCOME\tWEATHER\tTRAFFIC\tDELAY (MIN)\tETA"); err != nil {
		return err
	}
	for _, r := range recs {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%.2f\t%s\n",
			r.Timestamp.UTC().Format(time.RFC3339),
			r.RouteID,
			r.Outcome,
			r.WeatherFactor,
			r.TrafficFactor,
			r.DelayMinutes,
			r.ETA.Round(time.Second),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
