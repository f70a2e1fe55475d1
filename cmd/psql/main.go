package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/bgunnarsson/psql/internal/app"
	"github.com/bgunnarsson/psql/internal/config"
	"github.com/bgunnarsson/psql/internal/logger"
	"github.com/bgunnarsson/psql/internal/print"
	"github.com/bgunnarsson/psql/internal/record"
)

func main() {
	cmd := &cli.Command{
		Name:      "psql",
		Usage:     "Execute a PostgreSQL query and emit its rows as records",
		ArgsUsage: "<conn> <query>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML config file",
				Sources: cli.EnvVars("PSQL_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "driver",
				Aliases: []string{"d"},
				Usage:   "database engine: postgres, sqlite, mysql or mssql",
				Sources: cli.EnvVars("PSQL_DRIVER"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: auto, json or table",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "give up after this long, 0 waits forever",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "console log level: debug, info, warn or error",
				Sources: cli.EnvVars("PSQL_LOG_LEVEL"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if n := cmd.Args().Len(); n != 2 {
		return fmt.Errorf("expected <conn> and <query> arguments, got %d", n)
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}
	if cmd.IsSet("timeout") {
		cfg.Timeout = cmd.Duration("timeout")
	}
	if cmd.IsSet("log-level") {
		cfg.Logging.ConsoleLevel = cmd.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		return err
	}

	driver, dsn := cfg.Resolve(cmd.Args().Get(0))
	if cmd.IsSet("driver") {
		driver = cmd.String("driver")
	}

	res, err := app.Run(ctx, app.Request{
		Driver:  app.Driver(driver),
		DSN:     dsn,
		Query:   cmd.Args().Get(1),
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return err
	}

	format := cfg.Format
	if format == "auto" {
		format = "json"
		if term.IsTerminal(int(os.Stdout.Fd())) {
			format = "table"
		}
	}

	if format == "table" {
		return print.RenderTable(os.Stdout, record.Names(res.Columns), res.Records, print.Options{MaxWidth: cfg.MaxWidth})
	}
	return print.RenderJSON(os.Stdout, res.Records)
}
