package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/notargets/gotopo/coverage"
	"github.com/notargets/gotopo/geometry"
	"github.com/notargets/gotopo/reconstruct"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gonum.org/v1/gonum/floats"
)

var (
	activeLabel   = color.New(color.FgGreen).SprintFunc()
	consumedLabel = color.New(color.FgRed, color.Bold).SprintFunc()
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// writeSpanTable prints every point slot of span at time with its strain and
// scalar values. Consumed points are listed with blank values.
func writeSpanTable(w io.Writer, name string, span *reconstruct.GeometryTimeSpan,
	scalars []*coverage.TimeSpan, time float64) error {
	if _, err := fmt.Fprintf(w, "\n%s at %g Ma\n", name, time); err != nil {
		return err
	}
	all, ok := span.AllGeometryData(time, reconstruct.AllFields)
	if !ok {
		_, err := fmt.Fprintf(w, "%s: every point has been consumed\n", consumedLabel("not valid"))
		return err
	}

	headers := []string{"#", "Lat", "Lon", "Status", "Location", "Dilatation rate", "Total dilatation"}
	var columns [][]float64
	for _, ts := range scalars {
		for _, st := range ts.ScalarTypes() {
			values, _, ok := ts.AllScalarValues(st, time)
			if !ok {
				continue
			}
			headers = append(headers, string(st))
			columns = append(columns, values)
		}
	}

	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var rows [][]string
	var rates []float64
	for i, active := range all.Active {
		row := []string{strconv.Itoa(i)}
		if !active {
			row = append(row, "", "", consumedLabel("consumed"), "", "", "")
			for range columns {
				row = append(row, "")
			}
			rows = append(rows, row)
			continue
		}
		lat, lon := geometry.LatLon(all.Points[i])
		rate := all.StrainRates[i].Dilatation()
		rates = append(rates, rate)
		row = append(row,
			formatFloat(lat),
			formatFloat(lon),
			activeLabel("active"),
			all.Locations[i].String(),
			formatFloat(rate),
			formatFloat(all.Strains[i].Dilatation()))
		for _, col := range columns {
			row = append(row, formatFloat(col[i]))
		}
		rows = append(rows, row)
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(rates) == 0 {
		_, err := fmt.Fprintf(w, "Active points: 0 of %d\n", len(all.Active))
		return err
	}
	_, err := fmt.Fprintf(w, "Active points: %d of %d, dilatation rate min %s mean %s max %s (1/My)\n",
		len(rates), len(all.Active),
		formatFloat(floats.Min(rates)), formatFloat(floats.Sum(rates)/float64(len(rates))),
		formatFloat(floats.Max(rates)))
	return err
}

// writeVelocityTable prints the velocity of every active point of span
func writeVelocityTable(w io.Writer, name string, v reconstruct.VelocityData, time float64) error {
	if _, err := fmt.Fprintf(w, "\n%s velocities at %g Ma\n", name, time); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()
	table.Header([]string{"#", "Lat", "Lon", "Speed (cm/yr)", "Azimuth", "Location"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	speeds := make([]float64, len(v.Points))
	rows := make([][]string, len(v.Points))
	for i, p := range v.Points {
		lat, lon := geometry.LatLon(p)
		speeds[i] = geometry.SpeedCmsPerYear(v.Velocities[i])
		rows[i] = []string{
			strconv.Itoa(i),
			formatFloat(lat),
			formatFloat(lon),
			formatFloat(speeds[i]),
			formatFloat(geometry.AzimuthDegrees(p, v.Velocities[i])),
			v.Locations[i].String(),
		}
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if len(speeds) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "Mean speed %s cm/yr over %d points\n",
		formatFloat(floats.Sum(speeds)/float64(len(speeds))), len(speeds))
	return err
}
