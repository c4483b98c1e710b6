package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-landing"
)

func newImportCommand(root *rootOptions) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import markdown fixtures into the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(dir) == "" {
				return errors.New("--dir is required")
			}
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			module, err := landing.NewWithContext(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer module.Close()

			result, err := module.ImportFixtures(cmd.Context(), dir)
			if err != nil {
				return err
			}
			cmd.Printf("imported %d variants (%d segments): %s\n", len(result.Variants), result.Segments, strings.Join(result.Variants, ", "))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory of markdown fixtures")
	return cmd
}
