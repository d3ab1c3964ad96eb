// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/meta"
	"github.com/snapdiff/snapdiff/internal/version"
)

// InitApp loads the configuration named on the command line (or found by the
// usual lookup) and builds the command tree around it. A missing config file
// is not fatal here; commands that need one fail in their Before hook.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary is the subcommand and also
	// the namespace used when looking up config values. It could be a flag,
	// so ignore it if it looks like one.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfgFile := ConfigFileFromArgs(args)
	cfg, cfgErr := config.Load(cfgFile)
	if cfgErr != nil {
		// An explicitly named file that cannot be read is always an error.
		if cfgFile != "" {
			return nil, cfgErr
		}
		log.Debugf("no config loaded: %v", cfgErr)
	}
	cfg.Namespace = ns

	m, err := meta.New(ctx, args, cfg, sd)
	if err != nil {
		return nil, err
	}

	app := &cli.Command{
		Name:  version.Name,
		Usage: "visual regression snapshots",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "snapdiff version info",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:    "config-file",
				Aliases: []string{"c"},
				Usage:   "config file location",
				Sources: cli.EnvVars("SNAPDIFF_CFG_FILE"),
			},
		},
	}

	app.Commands = append(app.Commands,
		compareCommandBuilder(m),
		pushCommandBuilder(m),
		errorsCommandBuilder(m),
		deltaCommandBuilder(m),
		versionCommandBuilder(m),
		completionCommandBuilder(m),
	)

	for _, cmd := range app.Commands {
		if cmd.Before == nil && cmd.Metadata["needsConfig"] == true {
			cmd.Before = requireConfig(cfgErr)
		}
		// Make sure flags are sorted for the --help text.
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

// ConfigFileFromArgs returns the value given to --config-file or -c, in
// either the separate or the = form. The last occurrence wins.
func ConfigFileFromArgs(args []string) string {
	var path string
	for i := 1; i < len(args); i++ {
		if args[i] == "--" {
			break
		}
		name, value, hasValue := strings.Cut(args[i], "=")
		switch name {
		case "--config-file", "-config-file", "-c", "--c":
		default:
			continue
		}
		if hasValue {
			path = value
		} else if i+1 < len(args) {
			path = args[i+1]
			i++
		}
	}
	return path
}

// requireConfig fails commands that depend on a config file when none could
// be loaded.
func requireConfig(cfgErr error) cli.BeforeFunc {
	return func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if cfgErr == nil {
			return ctx, nil
		}
		if errors.Is(cfgErr, config.ErrConfig) {
			return ctx, cfgErr
		}
		return ctx, fmt.Errorf("%w: %v", config.ErrConfig, cfgErr)
	}
}
