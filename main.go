package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	xlog "github.com/twitchylinux/twlconf/internal/log"
	"github.com/twitchylinux/twlconf/install"
)

var (
	logLevel string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "twlconf",
	Short: "Inspect and normalise installer configuration files",
	Long: `twlconf reads installer configuration documents produced by the
installer frontend and writes them back in the form the installation
engine consumes.

Malformed documents never abort: they are logged and replaced by the
default configuration.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevel
		if verbose {
			level = "debug"
		}
		xlog.Configure(xlog.Config{Level: level, Output: os.Stderr, Console: true})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $LOG_LEVEL or info")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// readConfig loads the configuration at path, falling back to defaults on
// malformed content. Only failing to read the file is an error.
func readConfig(path string) (install.Configuration, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return install.Configuration{}, fmt.Errorf("reading config: %v", err)
	}
	return install.LoadFromJSON(b), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
