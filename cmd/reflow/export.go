package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/reflow-ui/reflow/internal/preview"
	"github.com/reflow-ui/reflow/pkg/render"
)

func exportCmd() *cobra.Command {
	var (
		output string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a static HTML snapshot",
		Long: `Export a static HTML snapshot of the demo application.

The tree is built once and serialized without mounting: event
handlers are skipped and output is deterministic.

Examples:
  reflow export
  reflow export --output=index.html --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(output, pretty)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print the HTML")

	return cmd
}

func runExport(output string, pretty bool) error {
	r := render.NewRenderer(render.Config{Pretty: pretty})

	if output == "" {
		return r.RenderToWriter(os.Stdout, preview.DemoView())
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := r.RenderToWriter(f, preview.DemoView()); err != nil {
		return err
	}
	success("wrote %s", output)
	return nil
}
