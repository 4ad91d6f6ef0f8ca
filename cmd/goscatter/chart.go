package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"goscatter/internal/dataset"
	"goscatter/internal/scatter"
)

func addChartFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("title", "", "chart title")
	pf.String("x", "MPG", "field plotted on the x axis")
	pf.String("y", "Price", "field plotted on the y axis")
	pf.String("r", "", "field sizing the markers")
	pf.String("color", "", "field coloring the markers")
	pf.StringSlice("legend", nil, "legend labels (default: the color categories)")
	pf.StringSlice("details", scatter.DefaultDetailFields, "fields listed for selected records")
	pf.Float64("margin", scatter.DefaultMargin, "plot margin in chart pixels")
	pf.Float64("width", scatter.DefaultSize, "chart width in pixels")
	pf.Float64("height", scatter.DefaultSize, "chart height in pixels")
	pf.String("query", "", "SQL selecting records from a sqlite source")
}

// chartConfig builds a render config from viper. Data is left to the caller.
func chartConfig(logger *slog.Logger, target string) scatter.Config {
	return scatter.Config{
		Target:       target,
		Title:        viper.GetString("chart.title"),
		XField:       viper.GetString("chart.x"),
		YField:       viper.GetString("chart.y"),
		RadiusField:  viper.GetString("chart.r"),
		ColorField:   viper.GetString("chart.color"),
		Legend:       viper.GetStringSlice("chart.legend"),
		DetailFields: viper.GetStringSlice("chart.details"),
		Margin:       viper.GetFloat64("chart.margin"),
		Width:        viper.GetFloat64("chart.width"),
		Height:       viper.GetFloat64("chart.height"),
		Logger:       logger,
	}
}

func sourceOptions() dataset.Options {
	return dataset.Options{Query: viper.GetString("sqlite.query")}
}

// loadRecords reads the dataset named on the command line.
func loadRecords(ctx context.Context, path string) (dataset.Set, error) {
	s, err := dataset.Load(ctx, path, sourceOptions())
	if err != nil {
		return dataset.Set{}, fmt.Errorf("load %s: %w", path, err)
	}
	slog.Debug("loaded dataset", "path", path, "records", len(s.Records), "fields", strings.Join(s.Fields, ","))
	return s, nil
}
