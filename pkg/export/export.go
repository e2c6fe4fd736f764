// Package export writes optimization results in table, JSON or CSV form.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/kilianp07/routeeta/core/model"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

var csvHeader = []string{
	"route_id",
	"predicted_delay_minutes",
	"optimized_delay_minutes",
	"original_eta_minutes",
	"optimized_eta_minutes",
}

// Write dispatches to the writer for format.
func Write(w io.Writer, format string, routes []model.OptimizedRoute) error {
	switch format {
	case "", FormatTable:
		return WriteTable(w, routes)
	case FormatJSON:
		return WriteJSON(w, routes)
	case FormatCSV:
		return WriteCSV(w, routes)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteJSON writes the optimized routes to w in JSON format.
func WriteJSON(w io.Writer, routes []model.OptimizedRoute) error {
	if routes == nil {
		routes = []model.OptimizedRoute{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(routes)
}

// WriteCSV writes the optimized routes to w with durations in minutes.
func WriteCSV(w io.Writer, routes []model.OptimizedRoute) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range routes {
		rec := []string{
			r.RouteID,
			minutes(r.PredictedDelay),
			minutes(r.OptimizedDelay),
			minutes(r.OriginalETA),
			minutes(r.OptimizedETA),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable writes an aligned, human readable table.
func WriteTable(w io.Writer, routes []model.OptimizedRoute) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ROUTE\tDELAY\tOPTIMIZED DELAY\tETA\tOPTIMIZED ETA"); err != nil {
		return err
	}
	for _, r := range routes {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.RouteID,
			r.PredictedDelay.Round(time.Second),
			r.OptimizedDelay.Round(time.Second),
			r.OriginalETA.Round(time.Second),
			r.OptimizedETA.Round(time.Second),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func minutes(d time.Duration) string {
	return strconv.FormatFloat(d.Minutes(), 'f', 2, 64)
}
