// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/snapdiff/snapdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for snapdiff
_snapdiff()
{
    local cur prev cmd
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "compare push errors delta version completion --help --version" -- "$cur") )
        return 0
    fi

    if [[ "$prev" == "--config-file" || "$prev" == "-c" ]]; then
        COMPREPLY=( $(compgen -f -- "$cur") )
        return 0
    fi
    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    case "$cmd" in
        compare)
            local opts="--color --concurrency -j --fail-on-diff --output -o --pick --sort -s --strict --titles -t --config-file -c"
            ;;
        push|errors)
            local opts="--concurrency -j --config-file -c"
            ;;
        delta)
            if [[ "$cur" != -* ]]; then
                COMPREPLY=( $(compgen -f -X '!*.json' -- "$cur") )
                return 0
            fi
            local opts="--color"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="--help"
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _snapdiff snapdiff
`

const zshCompletionScript = `#compdef snapdiff

_snapdiff() {
  local -a cmds
  cmds=(
    'compare:compare local snapshots against a pushed target'
    'push:push local snapshots and the last comparison as a target'
    'errors:upload failure screenshots and errors for a commit'
    'delta:show the raw differences between two manifest files'
    'version:print version information'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
    '(-c --config-file)'{-c,--config-file}'[config file]:file:_files'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'snapdiff commands' cmds
    return
  fi

  case $words[2] in
    compare)
      _arguments -C \
        $common \
        '--color[enable colored text]' \
        '(-j --concurrency)'{-j,--concurrency}'[parallel transfers]:n' \
        '--fail-on-diff[exit non-zero when anything changed]' \
        '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
        '--pick[choose the target interactively]' \
        '(-s --sort)'{-s,--sort}'[sort columns]:columns' \
        '--strict[fail when an image pair cannot be diffed]' \
        '(-t --titles)'{-t,--titles}'[show titles]' \
        '::target:'
      ;;
    push|errors)
      _arguments -C \
        $common \
        '(-j --concurrency)'{-j,--concurrency}'[parallel transfers]:n' \
        ':name:'
      ;;
    delta)
      _arguments -C \
        '--color[enable colored output]' \
        ':expected:_files -g "*.json"' \
        ':actual:_files -g "*.json"'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _snapdiff snapdiff
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := cmd.Args().First()
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout, zshCompletionScript)
	default:
		fmt.Fprintln(stderr, "usage: snapdiff completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "snapdiff completion [bash|zsh]",
		Metadata:  map[string]any{"meta": m},
		Action:    completionCommandAction,
	}
}
