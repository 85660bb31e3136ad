// Package cli wires the pasters commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tombowditch/pasters/client"
	"github.com/tombowditch/pasters/internal/config"
)

type app struct {
	version string

	cfgPath string
	baseURL string
	verbose bool

	log *logrus.Logger
	cfg *config.Config
}

// NewRootCmd builds the command tree. Log output goes to logOut.
func NewRootCmd(version string, logOut io.Writer) *cobra.Command {
	a := &app{version: version, log: logrus.New()}
	a.log.SetOutput(logOut)
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	root := &cobra.Command{
		Use:           "pasters",
		Short:         "Command line client for paste.rs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "", "config file (default $XDG_CONFIG_HOME/"+config.DefaultConfigFile+")")
	flags.StringVar(&a.baseURL, "base-url", "", "paste service base URL (default "+client.DefaultBaseURL+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newGetCmd(),
		a.newNewCmd(),
		a.newServeCmd(),
		a.newVersionCmd(),
	)
	return root
}

func (a *app) setup() error {
	a.log.SetLevel(logrus.WarnLevel)
	if a.verbose {
		a.log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	a.cfg = cfg

	a.log.WithField("base_url", cfg.BaseURL).Debug("configuration loaded")
	return nil
}

func (a *app) client() (*client.Client, error) {
	return client.New(client.WithBaseURL(a.cfg.BaseURL))
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), a.version)
		},
	}
}

// Run executes the command line in args and reports a failure on stderr as
// the error's text. It returns the process exit code.
func Run(ctx context.Context, version string, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(version, stderr)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
