// Package commands implements the CLI commands for the toolcube tool.
package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/toolcube/toolcube/internal/app"
	"github.com/toolcube/toolcube/internal/core/ports"
)

// defaultPrefixDir is the install root used when neither the --prefix flag
// nor $INSTALL_PREFIX is set, relative to the user's home directory.
const defaultPrefixDir = ".tools"

// CLI represents the command line interface for toolcube.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App, logger ports.Logger) *CLI {
	c := &CLI{app: a, logger: logger}

	// No Version field on the root command: cobra's default version flag
	// would claim the "v" shorthand the verbosity flag uses. The version
	// subcommand covers it.
	rootCmd := &cobra.Command{
		Use:           "toolcube [flags] [TOOL_DIR]",
		Short:         "Provision isolated environments for tool definitions",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runDeploy,
	}

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().BoolP("dev", "d", false, "Install the tool's own package in editable mode")
	rootCmd.Flags().BoolP("force", "f", false, "Recreate the environment without consulting the lock file")
	rootCmd.Flags().StringP("prefix", "p", "", "Install root (default $INSTALL_PREFIX or ~/"+defaultPrefixDir+")")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (repeatable)")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runDeploy(cmd *cobra.Command, args []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	c.logger.SetVerbosity(verbosity)

	toolDir := "."
	if len(args) == 1 {
		toolDir = args[0]
	}

	dev, _ := cmd.Flags().GetBool("dev")
	force, _ := cmd.Flags().GetBool("force")
	prefix, _ := cmd.Flags().GetString("prefix")
	prefix, err := resolvePrefix(prefix)
	if err != nil {
		return err
	}

	return c.app.Deploy(cmd.Context(), app.Options{
		ToolDir: toolDir,
		Prefix:  prefix,
		Dev:     dev,
		Force:   force,
	})
}

// resolvePrefix picks the install root: the flag wins, then $INSTALL_PREFIX,
// then ~/.tools.
func resolvePrefix(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv("INSTALL_PREFIX"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, defaultPrefixDir), nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
