package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mbeaumont/dircomp/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or modify dircomp configuration.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			fmt.Printf("Only Extensions:   %s\n", joinOrNone(cfg.Filter.OnlyExtensions))
			fmt.Printf("Ignore Extensions: %s\n", joinOrNone(cfg.Filter.IgnoreExtensions))
			fmt.Printf("Ignore Dirs:       %s\n", joinOrNone(cfg.Filter.IgnoreDirs))
			fmt.Printf("Ignore Files:      %s\n", joinOrNone(cfg.Filter.IgnoreFilePatterns))
			fmt.Printf("Max Workers:       %d\n", cfg.Performance.MaxWorkers)
			fmt.Printf("Max File Size:     %d\n", cfg.Performance.MaxFileSize)
			fmt.Printf("Max Diff Lines:    %d\n", cfg.Performance.MaxDiffLines)
			fmt.Printf("Output Format:     %s\n", cfg.Output.Format)
			fmt.Printf("Progress Bar:      %v\n", cfg.Output.Progress)
			fmt.Printf("Logging Enabled:   %v\n", cfg.Logging.Enabled)
			fmt.Printf("Log Level:         %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Printf("Configuration file created at: %s\n", path)
			return nil
		},
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
