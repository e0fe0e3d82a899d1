// alsdump is a CLI tool that dumps the timeline of DAW project files:
// tracks, clips, automation curves, tempo and duration.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	ansi "github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Coestaris/alsparse"
)

var (
	logLevel     string
	jsonLogs     bool
	outputFormat string
	withEvents   bool
	strict       bool
)

var rootCmd = &cobra.Command{
	Use:   "alsdump [flags] <file>...",
	Short: "Dump the timeline of DAW project files",
	Long: `Dump the timeline of DAW project files: tracks, clips,
automation curves, tempo and duration.

Supported formats: ` + strings.Join(alsparse.SupportedExtensions(), ", "),
	Version: alsparse.Version,
	Args:    cobra.MinimumNArgs(1),
	RunE:    run,
}

func init() {
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, yaml")
	rootCmd.Flags().BoolVar(&withEvents, "events", false, "include individual automation events")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "treat parse warnings as errors")
}

func run(cmd *cobra.Command, args []string) error {
	setupLogging()

	var opts []alsparse.Option
	if strict {
		opts = append(opts, alsparse.WithStrictParsing())
	}

	// A progress bar only makes sense for batches, and only on the
	// terminal; rendered output goes to stdout afterwards.
	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.NewOptions(
			len(args),
			progressbar.OptionSetWriter(ansi.NewAnsiStderr()),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: ".",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionShowCount(),
			progressbar.OptionSetDescription("[cyan]Parsing sets...[reset]"),
		)
	}

	var rendered []string
	for _, path := range args {
		slog.Info("parsing input file", "path", path)
		project, err := alsparse.ParseFile(path, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, w := range project.Warnings() {
			slog.Warn("parse warning", "path", path, "warning", w.String())
		}

		out, err := render(project, outputFormat, withEvents)
		if err != nil {
			return err
		}
		rendered = append(rendered, out)

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	for _, out := range rendered {
		fmt.Print(out)
	}
	return nil
}

func setupLogging() {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
