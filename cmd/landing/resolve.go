package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-landing"
	"github.com/goliatone/go-landing/segments"
)

func newResolveCommand(root *rootOptions) *cobra.Command {
	var (
		locale   string
		viewerID int64
		viewer   string
	)
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the hero once and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			module, err := landing.NewWithContext(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer module.Close()

			req := landing.Request{Hint: locale}
			if cmd.Flags().Changed("viewer") {
				req.Viewer = &segments.Viewer{ID: viewerID, DisplayName: viewer}
			}

			result, err := module.ResolvePage(cmd.Context(), req)
			if err != nil {
				if landing.IsNotFound(err) {
					return fmt.Errorf("content not available for locale %q", locale)
				}
				return err
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			cmd.Println(string(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale hint, empty for the default locale")
	cmd.Flags().Int64Var(&viewerID, "viewer", 0, "signed-in viewer id")
	cmd.Flags().StringVar(&viewer, "viewer-name", "", "signed-in viewer display name")
	return cmd
}
