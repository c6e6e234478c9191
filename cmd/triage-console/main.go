// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// triage-console is the operator console for the ticket-triage
// service. Without a subcommand it opens an interactive terminal UI
// with two tabs: a submission form that shows the backend's analysis
// of each new ticket, and a filterable ticket roster with a per-ticket
// processing log inspector.
//
// The same controllers are available non-interactively:
//
//	triage-console submit --name N --email E --subject S --message M
//	triage-console tickets [--status S] [--urgency U]
//	triage-console logs <ticket-id> [--view all|flags|errors]
//
// Configuration comes from an optional YAML file (--config or
// TRIAGE_CONFIG), a .env file in the working directory, and
// TRIAGE_API_BASE_URL. --base-url overrides all of them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/triage-console/lib/config"
	"github.com/bureau-foundation/triage-console/lib/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the flags accepted before the subcommand.
type globalOptions struct {
	configPath string
	baseURL    string
	logLevel   string
	logOutput  string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var options globalOptions

	flagSet := pflag.NewFlagSet("triage-console", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&options.configPath, "config", "", "path to YAML config file (default: $"+config.ConfigPathVariable+")")
	flagSet.StringVar(&options.baseURL, "base-url", "", "backend base URL (overrides config and $"+config.BaseURLVariable+")")
	flagSet.StringVar(&options.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	flagSet.StringVar(&options.logOutput, "log-output", "", "also write JSON log records to this file")
	showVersion := flagSet.Bool("version", false, "print version information and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return usageError("%v", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}
	if *showVersion {
		fmt.Fprintf(stdout, "triage-console %s\n", version.Full())
		return nil
	}

	cfg, err := loadConfig(options)
	if err != nil {
		return err
	}

	remaining := flagSet.Args()
	if len(remaining) == 0 {
		return runInteractive(ctx, cfg, options)
	}

	session, err := newCommandSession(cfg, options, stderr)
	if err != nil {
		return err
	}
	defer session.close()

	command, commandArgs := remaining[0], remaining[1:]
	switch command {
	case "submit":
		return runSubmitCommand(ctx, session, commandArgs, stdout)
	case "tickets":
		return runTicketsCommand(ctx, session, commandArgs, stdout)
	case "logs":
		return runLogsCommand(ctx, session, commandArgs, stdout)
	case "help":
		printHelp(stderr, flagSet)
		return nil
	default:
		return usageError("unknown command %q (expected submit, tickets, or logs)", command)
	}
}

// loadConfig reads .env, then the config file, then applies the flag
// overrides and validates the result.
func loadConfig(options globalOptions) (*config.Config, error) {
	if err := config.LoadDotenv(".env"); err != nil {
		return nil, err
	}
	cfg, err := config.Load(options.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if options.baseURL != "" {
		cfg.API.BaseURL = options.baseURL
	}
	if options.logLevel != "" {
		cfg.Logging.Level = options.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func printHelp(output io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(output, `Triage console: submit support tickets and review how the triage
service routed them.

Without a command, opens the interactive console (requires a terminal).

Usage:
  triage-console [flags] [command]

Commands:
  submit   --name N --email E --subject S --message M
           Validate and submit a ticket, then print the analysis.
  tickets  [--status Auto-Resolved|"Needs Human Review"] [--urgency low|medium|high]
           List tickets, newest first.
  logs     <ticket-id> [--view all|flags|errors]
           Print the processing log of a ticket.

Examples:
  # Open the console against a staging backend
  triage-console --base-url https://triage.staging.example.com

  # Tickets that need a human
  triage-console tickets --status "Needs Human Review"

  # Only log entries that raised guardrail flags
  triage-console logs 42 --view flags

Flags:
`)
	flagSet.SetOutput(output)
	flagSet.PrintDefaults()
}
