package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	configapp "github.com/doeshing/shellbuddy/internal/application/config"
	"github.com/doeshing/shellbuddy/internal/domain"
	configinfra "github.com/doeshing/shellbuddy/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with all subcommands
func NewConfigCommand(container ContainerFunc) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect ShellBuddy configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfiguration(cmd, container)
		},
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the effective configuration (API keys masked)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfiguration(cmd, container)
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file location",
			RunE: func(cmd *cobra.Command, args []string) error {
				c := container()
				if c == nil || c.ConfigLoader == nil {
					return errors.New(ErrConfigLoaderUnavailable)
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.ConfigLoader.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the configuration file",
			RunE: func(cmd *cobra.Command, args []string) error {
				c := container()
				if c == nil {
					return errors.New(ErrConfigLoaderUnavailable)
				}
				if _, err := c.Config(cmd.Context()); err != nil {
					return fmt.Errorf("configuration validation failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
				return nil
			},
		},
		newConfigInitCommand(container),
	)

	return configCmd
}

func newConfigInitCommand(container ContainerFunc) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := container()
			if c == nil || c.ConfigLoader == nil {
				return errors.New(ErrConfigLoaderUnavailable)
			}
			path := c.ConfigLoader.Path()
			if err := configinfra.Init(path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s. Add your API key under api_keys or export %s/%s.\n",
				path, domain.GeminiAPIKeyName, domain.OpenAIAPIKeyName)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func showConfiguration(cmd *cobra.Command, container ContainerFunc) error {
	c := container()
	if c == nil || c.ConfigProvider == nil {
		return errors.New(ErrConfigLoaderUnavailable)
	}
	cfg, err := c.ConfigProvider.Load(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", c.ConfigLoader.Path())
	if err := writeYAML(out, cfg.Redacted()); err != nil {
		return err
	}
	if err := configapp.Validate(cfg); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	return nil
}

func writeYAML(out io.Writer, cfg domain.Config) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
