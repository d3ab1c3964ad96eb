// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/snapdiff/snapdiff/internal/config"
	"github.com/snapdiff/snapdiff/internal/layout"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// the loaded configuration and its typed view, the local store layout and the
// starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Settings    config.Settings
	Context     context.Context
	Store       layout.Layout
	StartingDir string
}

// New resolves settings from cfg and roots the store at its localFolder.
func New(ctx context.Context, args []string, cfg config.Type, startingDir string) (Meta, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return Meta{}, err
	}

	return Meta{
		Args:        args,
		Config:      cfg,
		Settings:    settings,
		Context:     ctx,
		Store:       layout.New(settings.LocalFolder),
		StartingDir: startingDir,
	}, nil
}
