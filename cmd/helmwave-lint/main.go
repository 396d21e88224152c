package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/helmwave/helmwave-lint/pkg/cli"
	"github.com/helmwave/helmwave-lint/pkg/console"
	"github.com/helmwave/helmwave-lint/pkg/constants"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var (
	verbose    bool
	configPath string
)

// validateFormat validates the format flag value
func validateFormat(format string) error {
	if format != "" && format != "text" && format != "json" {
		return fmt.Errorf("invalid format value '%s'. Must be 'text' or 'json'", format)
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "Validate helmwave.yml files with precise line and column diagnostics",
	Long: `helmwave-lint checks helmwave.yml files against the helmwave schema.

Every finding is reported with the exact line and column range it refers to,
together with a suggested fix where one is known.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Validate helmwave files",
	Long: `Validate helmwave files. Directories are searched for helmwave.yml,
*_helmwave.yml and *-helmwave.yml (and their .yaml variants); files named
explicitly are always validated.

Examples:
  ` + constants.CLIName + ` validate
  ` + constants.CLIName + ` validate helmwave.yml --format json
  ` + constants.CLIName + ` validate deploy/ --watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		watch, _ := cmd.Flags().GetBool("watch")
		failOnWarning, _ := cmd.Flags().GetBool("fail-on-warning")
		if err := validateFormat(format); err != nil {
			return err
		}

		config, err := cli.LoadConfig(configPath, verbose)
		if err != nil {
			return err
		}

		opts := cli.ValidateOptions{
			Paths:         args,
			Format:        format,
			FailOnWarning: failOnWarning,
			Verbose:       verbose,
			Config:        config,
		}
		if watch {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return cli.WatchAndValidate(ctx, opts)
		}
		return cli.RunValidate(opts)
	},
}

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Show the sections, releases and hooks of a helmwave file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := validateFormat(format); err != nil {
			return err
		}
		return cli.PrintOutline(os.Stdout, args[0], format)
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve validation as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if verbose {
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Starting MCP server on stdio"))
		}
		return cli.RunMCPServer(ctx, version)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIName, version)))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output showing detailed information")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration file (default "+constants.ConfigFileName+")")

	validateCmd.Flags().StringP("format", "f", "", "Output format: text or json (default from config, otherwise text)")
	validateCmd.Flags().BoolP("watch", "w", false, "Watch for changes and re-validate automatically")
	validateCmd.Flags().Bool("fail-on-warning", false, "Exit with a non-zero status when warnings are found")

	outlineCmd.Flags().StringP("format", "f", "text", "Output format: text or json")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrValidationFailed) {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		os.Exit(1)
	}
}
