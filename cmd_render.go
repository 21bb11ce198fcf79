package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tourly/pkg/models"
	"tourly/pkg/richtext"

	"github.com/spf13/cobra"
)

var (
	renderClass     string
	renderFragments bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a rich-text JSON document to HTML",
	Long: `Reads a Storyblok rich-text document (the value of a richtext field)
from file, or stdin when no file is given, and prints the HTML.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderClass, "class", "", "class for the wrapping div")
	renderCmd.Flags().BoolVar(&renderFragments, "fragments", false, "print one fragment per top-level node instead of a wrapped document")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger, err := initLogging()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var doc models.Document
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}

	renderer := richtext.New(logger.Named("richtext"))
	out := cmd.OutOrStdout()
	if renderFragments {
		for _, fragment := range renderer.Render(doc.Root) {
			fmt.Fprintln(out, fragment)
		}
		return nil
	}
	fmt.Fprintln(out, renderer.RenderDocument(doc, renderClass))
	return nil
}
