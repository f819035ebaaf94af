package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cyp0633/schedcfg/locale"
	"github.com/cyp0633/schedcfg/schedule"
)

//go:embed schedules.yaml
var defaultSchedules []byte

const defaultNow = "2021-01-01 10:30"

var (
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

type options struct {
	file     string
	lang     string
	now      string
	upcoming int
	debug    bool
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "schedcfg-example",
		Short: "Resolve the next execution of the schedules in a YAML file",
		Long: `Reads a YAML schedule file (the bundled sample when --file is omitted),
resolves the next execution of every schedule and prints it with its
description.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(out, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "schedule file to read")
	flags.StringVarP(&opts.lang, "lang", "l", "", "description language (overrides the file)")
	flags.StringVar(&opts.now, "now", defaultNow, "reference date, YYYY-MM-DD[ HH:MM]")
	flags.IntVarP(&opts.upcoming, "upcoming", "n", 1, "number of executions to list per schedule")
	flags.BoolVar(&opts.debug, "debug", false, "log resolver decisions to stderr")

	return cmd
}

func run(out io.Writer, opts options) error {
	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	data := defaultSchedules
	if opts.file != "" {
		b, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("reading schedule file: %w", err)
		}
		data = b
	}

	file, err := loadSchedules(bytes.NewReader(data))
	if err != nil {
		return err
	}

	now, err := parseDate(opts.now, time.Local)
	if err != nil {
		return err
	}

	lang := locale.Default
	for _, tag := range []string{file.Language, opts.lang} {
		if tag == "" {
			continue
		}
		if lang, err = locale.Parse(tag); err != nil {
			return err
		}
	}

	r := schedule.NewResolverWithConfig(schedule.ResolverConfig{Logger: logger})
	defer r.Close()

	failed := 0
	for _, entry := range file.Schedules {
		fmt.Fprintln(out, bold(entry.Name))

		cfg, err := entry.config(now, lang)
		if err != nil {
			failed++
			fmt.Fprintf(out, "  %s\n", red(err.Error()))
			continue
		}
		if opts.lang != "" {
			cfg.Language = lang
		}

		events, err := r.Upcoming(cfg, max(opts.upcoming, 1))
		for _, event := range events {
			fmt.Fprintf(out, "  %s  %s\n", green(event.ExecutionDate.Format("2006-01-02 15:04:05")), gray(event.ExecutionDescription))
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "  %s\n", red(err.Error()))
			logger.Warn("schedule rejected", "name", entry.Name, "error", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d schedules could not be resolved", failed, len(file.Schedules))
	}
	return nil
}
