// Package cli implements the terminal surface: cobra commands, line input,
// confirmation prompts and console rendering.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/shellbuddy/internal/app"
	"github.com/doeshing/shellbuddy/internal/infrastructure/cli/commands"
	"github.com/doeshing/shellbuddy/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

const rootLong = `ShellBuddy is a conversational terminal assistant. Describe a task in plain
language; the model answers with an explanation and proposes shell commands.
Nothing runs until you confirm each command (y/n/a/q).

After a confirmed batch runs, its output is sent back to the model, which
proposes the next step on its own (auto-continue) until it has nothing left to
run, you abort, or max_steps rounds have passed. Set "auto_continue": false in
the config file to pause for your input after every batch.

Configuration is read from --config, $SHELLBUDDY_CONFIG, ./config.json or
./config.yaml. API keys come from the environment (GEMINI_API_KEY,
OPENAI_API_KEY) or the api_keys section of the config file.`

// NewRootCmd wires the cobra root command. The container is built once the
// global flags are parsed.
func NewRootCmd(ctx context.Context, opts Options) *cobra.Command {
	appOpts := app.Options{Verbose: opts.Verbose}
	var container *app.Container
	get := func() *app.Container { return container }

	root := &cobra.Command{
		Use:     "shellbuddy",
		Short:   "ShellBuddy - conversational shell assistant",
		Long:    rootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if container != nil {
				return nil
			}
			built, err := app.BuildContainer(cmd.Context(), appOpts)
			if err != nil {
				return err
			}
			container = built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if container != nil {
				container.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), container)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&appOpts.ConfigPath, "config", "c", "", "Config file (default ./config.json)")
	flags.BoolVarP(&appOpts.Verbose, "verbose", "v", opts.Verbose, "Enable diagnostic logging on stderr")
	flags.StringVar(&appOpts.Provider, "provider", "", "Override api_provider (gemini or openai)")
	flags.StringVarP(&appOpts.Model, "model", "m", "", "Override the model name")

	root.AddCommand(commands.NewHistoryCommand(get))
	root.AddCommand(commands.NewDoctorCommand(get))
	root.AddCommand(commands.NewConfigCommand(get))
	root.AddCommand(commands.NewVersionCommand())
	root.SetContext(ctx)
	return root
}

func runChat(ctx context.Context, container *app.Container) error {
	cfg, err := container.Config(ctx)
	if err != nil {
		return err
	}

	console := NewTerminalConsole(cfg.MaxOutputBytes)
	input := NewLineReader(os.Stdin, os.Stdout)
	defer input.Close()

	confirmer := NewConfirmer(input, os.Stdout, container.Guardrail(ctx), console.Styles())
	svc, sess, err := container.StartSession(ctx, app.UI{
		Console:   console,
		Input:     input,
		Confirmer: confirmer,
	})
	if err != nil {
		return err
	}
	return svc.Run(ctx, sess)
}
