// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/meta"
)

// NewOutputFlags returns the flags shared by commands that print a summary.
// Values may also come from the config file, namespaced to the command or
// global.
func NewOutputFlags(m meta.Meta, ns string) (flags []cli.Flag) {
	src := m.Config.Source

	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Usage:   "enable colored text output",
			Value:   false,
			Sources: ValueChainFromConfigFile(ns, src, "color", "SNAPDIFF_COLOR"),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml)",
			Value:   "text",
			Sources: ValueChainFromConfigFile(ns, src, "output"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort changes by, - prefix for descending",
			Sources: ValueChainFromConfigFile(ns, src, "sort"),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
			Sources: ValueChainFromConfigFile(ns, src, "titles"),
		},
	}

	return
}

// NewConcurrencyFlag bounds parallel transfers and image diffs. The default
// is the configured concurrency; a namespaced key such as
// compare.concurrency overrides it.
func NewConcurrencyFlag(m meta.Meta, ns string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "concurrency",
		Aliases: []string{"j"},
		Usage:   "maximum parallel transfers and image diffs",
		Value:   m.Settings.Concurrency,
		Sources: ValueChainFromConfigFile(ns, m.Config.Source, "concurrency", "SNAPDIFF_CONCURRENCY"),
		Validator: func(value int) error {
			return FlagValidators(value, ConcurrencyValidator)
		},
	}
}

// ValueChainFromConfigFile builds a source chain of the given env vars
// followed by the namespaced and then the global key in the config file. The
// config file is skipped when path is empty.
func ValueChainFromConfigFile(ns, path, name string, envs ...string) cli.ValueSourceChain {
	chain := cli.EnvVars(envs...)
	if path == "" {
		return chain
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))

	return chain
}
