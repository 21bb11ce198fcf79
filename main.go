package main

import (
	"fmt"
	"os"

	"tourly/pkg/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "tourly",
	Short:        "Tourly tour site backed by Storyblok",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, renderCmd, exportCmd)
}

// initLogging loads config and installs the process logger.
func initLogging() (*zap.Logger, error) {
	envLoaded := config.Init()

	logger, err := config.NewLogger()
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	if !envLoaded {
		logger.Info("No .env file found, using process environment")
	}
	return logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
