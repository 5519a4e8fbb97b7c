package cmd

import (
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/mcpify/mcpify-install/pkg/config"
	"github.com/mcpify/mcpify-install/pkg/installer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// errUnknownOption is returned for positional arguments and unrecognized flags.
var errUnknownOption = errors.New("unknown option")

var (
	// Global flags
	configFile string
	verbose    bool
	quiet      bool
	force      bool
	dryRun     bool
)

// newInstaller is overridden in tests to swap in fakes for the host.
var newInstaller = installer.New

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mcpify-install",
	Short: "Install the mcpify binary from its GitHub releases",
	Long: `mcpify-install downloads the prebuilt mcpify release for this platform,
verifies it against the release's checksum manifest, and places it on the
executable search path.

The release tag defaults to the latest published release; set
MCPIFY_RELEASE_TAG to pin one. The install directory defaults to
/usr/local/bin; set MCPIFY_INSTALL_DIR to override it. When the directory is
not writable, sudo or doas is used if available, otherwise the binary is
installed to $HOME/.local/bin.`,
	Example: `  # Install the latest release
  mcpify-install

  # Install a specific release into a custom directory
  MCPIFY_RELEASE_TAG=v1.2.3 MCPIFY_INSTALL_DIR=~/bin mcpify-install

  # Verify the download without installing
  mcpify-install --dry-run`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("%w: %s", errUnknownOption, args[0])
		}
		return nil
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetHandler(cli.New(os.Stderr))
		if verbose {
			log.SetLevel(log.DebugLevel)
			log.Debugf("Verbose logging enabled")
		} else if quiet {
			log.SetLevel(log.ErrorLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
		log.Debugf("Config file: %s", configFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runInstall(cmd)
		if err != nil {
			log.WithError(err).Error("installation failed")
		}
		return err
	},
}

func runInstall(cmd *cobra.Command) error {
	s, err := config.Resolve(configFile, os.Getenv)
	if err != nil {
		return err
	}

	inst, err := newInstaller(s)
	if err != nil {
		return err
	}
	inst.Force = force
	inst.DryRun = dryRun
	if verbose {
		inst.Progress = progressLogger(10)
	}

	res, err := inst.Run(cmd.Context())
	if err != nil {
		return err
	}

	report(cmd.OutOrStdout(), s.Name, res)
	return nil
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to config file (default: discover "+config.DefaultConfigPath+")")
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Increase log verbosity")
	RootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress progress output")
	RootCmd.Flags().BoolVarP(&force, "force", "f", false, "Reinstall even if mcpify is already on PATH")
	RootCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Download and verify, but do not install")

	RootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUnknownOption, err)
	})
}
