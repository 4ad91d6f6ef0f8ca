package main

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"goscatter/internal/tui"
)

func viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [data]",
		Short: "Explore a dataset in the terminal",
		Long: `Open the terminal viewer. Drag with the left mouse button to brush a
selection, click legend rows or press 1-9 to hide categories.

Without a data argument the viewer starts on the file picker.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := tui.Options{
				Chart:   chartConfig(slog.Default(), "-"),
				Margin:  viper.GetFloat64("tui.margin"),
				Source:  sourceOptions(),
				Logger:  slog.Default(),
				Context: cmd.Context(),
			}
			var m tui.Model
			if len(args) == 1 {
				opts.Dir = filepath.Dir(args[0])
				m = tui.NewWithPath(opts, args[0])
			} else {
				opts.Dir, _ = os.Getwd()
				m = tui.New(opts)
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(cmd.Context()))
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().Float64("tui-margin", tui.DefaultMargin, "plot margin in braille dots")
	return cmd
}
