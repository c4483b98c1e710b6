package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-landing"
)

type rootOptions struct {
	configPath  string
	fixturesDir string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "landing:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "landing",
		Short:         "Serve and resolve the locale-aware landing hero",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML configuration file")
	root.PersistentFlags().StringVar(&opts.fixturesDir, "fixtures", "", "markdown fixtures directory imported at startup")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newResolveCommand(opts))
	root.AddCommand(newImportCommand(opts))
	return root
}

// loadConfig reads the configuration file when one is given and applies
// command line overrides.
func (o *rootOptions) loadConfig() (landing.Config, error) {
	cfg := landing.DefaultConfig()
	if o.configPath != "" {
		loaded, err := landing.LoadConfig(o.configPath)
		if err != nil {
			return landing.Config{}, err
		}
		cfg = loaded
	}
	if o.fixturesDir != "" {
		cfg.Storage.FixturesDir = o.fixturesDir
	}
	return cfg, nil
}
