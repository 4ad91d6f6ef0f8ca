package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"goscatter/internal/export"
	"goscatter/internal/scatter"
)

func exportCmd() *cobra.Command {
	var (
		out        string
		formatFlag string
		brush      string
		hide       []string
		size       float64
	)
	cmd := &cobra.Command{
		Use:   "export <data>",
		Short: "Write the chart as svg, png, pdf or html",
		Long: `Render the chart once and write it to a file. The format follows the
output extension unless --format is given; "-o -" writes to stdout and
needs --format. --brush selects records inside a rectangle given in chart
pixels and --hide dims categories, as the interactive hosts would.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := strings.ToLower(formatFlag)
			if format == "" {
				format = export.FormatOf(out)
			}
			if format != "html" && !export.IsPlotFormat(format) {
				return fmt.Errorf("%w: %q", export.ErrFormat, out)
			}
			set, err := loadRecords(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			cfg := chartConfig(slog.Default(), out)
			cfg.Data = set.Records
			c, err := scatter.Render(cfg)
			if err != nil {
				return err
			}
			if err := export.Hide(c, hide); err != nil {
				return err
			}
			if brush != "" {
				r, err := export.ParseRect(brush)
				if err != nil {
					return err
				}
				c.OnDragStart()
				c.OnDragEnd(&r)
				for _, d := range c.Details() {
					fmt.Fprintln(cmd.OutOrStdout(), d)
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}
			if format == "html" {
				err = export.WriteHTML(w, c, export.HTMLOptions{})
			} else {
				err = export.WritePlot(w, c, format, vg.Length(size)*vg.Inch)
			}
			if err != nil {
				return err
			}
			slog.Info("exported chart", "output", out, "format", format, "records", len(set.Records), "selected", len(c.SelectedIndices()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "scatter.svg", "output file (.svg, .png, .pdf or .html), - for stdout")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "output format (svg, png, pdf or html); defaults to the output extension")
	cmd.Flags().StringVar(&brush, "brush", "", "select records inside x0,y0,x1,y1 (chart pixels)")
	cmd.Flags().StringSliceVar(&hide, "hide", nil, "categories to hide")
	cmd.Flags().Float64Var(&size, "size", float64(export.DefaultPlotSize/vg.Inch), "static plot width in inches")
	return cmd
}
