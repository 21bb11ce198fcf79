package main

import (
	"fmt"

	"tourly/pkg/config"
	"tourly/pkg/services"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [dir]",
	Short: "Render the published site to static files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := initLogging()
		if err != nil {
			return err
		}
		defer logger.Sync()

		pages, err := services.Init(logger)
		if err != nil {
			return err
		}

		dir := config.ExportPath
		if len(args) == 1 {
			dir = args[0]
		}
		written, err := services.ExportSite(cmd.Context(), pages, dir, config.StaticPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files to %s\n", len(written), dir)
		return nil
	},
}
