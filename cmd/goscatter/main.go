package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	// logFile is the open logging.file, closed when the command returns.
	logFile io.Closer
	rootCmd = &cobra.Command{
		Use:   "goscatter",
		Short: "Interactive scatterplots for tabular records",
		Long: `goscatter plots records from csv, json, yaml or sqlite sources as a
scatterplot with a brushable selection and a category legend.

Explore in the terminal with "view", write svg/png/pdf/html with "export",
or serve the chart over http with "serve".`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/goscatter/config.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.String("log-file", "", "write logs to this file instead of stderr")

	addChartFlags(rootCmd)

	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if logFile != nil {
		_ = logFile.Close()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(cmd *cobra.Command, _ []string) error {
	bindFlags(cmd)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(fmt.Sprintf("%s/.config/goscatter", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GOSCATTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	// the terminal viewer owns the screen, so it logs nowhere unless asked
	var out io.Writer = os.Stderr
	if cmd.Name() == "view" {
		out = io.Discard
	}
	f, err := setupLogging(out)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	logFile = f
	return nil
}

// flagKeys maps command line flags onto viper keys.
var flagKeys = map[string]string{
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"log-file":   "logging.file",
	"title":      "chart.title",
	"x":          "chart.x",
	"y":          "chart.y",
	"r":          "chart.r",
	"color":      "chart.color",
	"legend":     "chart.legend",
	"details":    "chart.details",
	"margin":     "chart.margin",
	"width":      "chart.width",
	"height":     "chart.height",
	"query":      "sqlite.query",
	"tui-margin": "tui.margin",
	"addr":       "serve.addr",
}

// bindFlags binds the flags cmd knows, inherited ones included.
func bindFlags(cmd *cobra.Command) {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}
}

// setupLogging installs the default slog logger. logging.file, when set,
// replaces out and is returned for the caller to close.
func setupLogging(out io.Writer) (io.Closer, error) {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	if format != "console" && format != "json" {
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	var f *os.File
	if path := viper.GetString("logging.file"); path != "" {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: slogLevel}
	if format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))

	if f == nil {
		return nil, nil
	}
	return f, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "goscatter", version)
		},
	}
}
