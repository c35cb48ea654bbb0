package util

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	model "clinic-insight-server/models/forecast"
)

// PlotRevenueSeries renders daily revenue as an HTML line chart.
func PlotRevenueSeries(daily map[string]float64, outputPath string) error {
	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	values := make([]opts.LineData, 0, len(dates))
	for _, d := range dates {
		values = append(values, opts.LineData{Value: daily[d]})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Daily Revenue",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Daily revenue (NT$)"}),
	)
	line.SetXAxis(dates).AddSeries("Revenue", values)

	return renderChart(line, outputPath)
}

// PlotEstimation renders actual vs. estimated visit counts from an
// estimation series.
func PlotEstimation(points []model.EstimationPoint, outputPath string) error {
	dates := make([]string, 0, len(points))
	actual := make([]opts.LineData, 0, len(points))
	estimated := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		dates = append(dates, p.Date)
		if p.IsEstimation {
			actual = append(actual, opts.LineData{Value: nil})
			estimated = append(estimated, opts.LineData{Value: p.Estimated})
		} else {
			actual = append(actual, opts.LineData{Value: p.Actual})
			estimated = append(estimated, opts.LineData{Value: nil})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Appointment Estimation",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Actual vs. estimated visits"}),
	)
	line.SetXAxis(dates).
		AddSeries("Actual", actual).
		AddSeries("Estimated", estimated)

	return renderChart(line, outputPath)
}

func renderChart(line *charts.Line, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file %q: %w", outputPath, err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
