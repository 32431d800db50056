package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	reportingAdapter "github.com/lcalzada-xor/prr/internal/adapters/reporting"
	"github.com/lcalzada-xor/prr/internal/core/services/reporting"
	"github.com/spf13/cobra"
)

func newReportCmd(opts *options) *cobra.Command {
	var input, outFile string
	var pdf bool

	cmd := &cobra.Command{
		Use:   "report [shared-code]",
		Short: "Build an assessment report, optionally as PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ref, err := opts.readAssessment(cmd, args, input)
			if err != nil {
				return err
			}

			report, err := reporting.NewGenerator(opts.scorer, opts.codec, nil).Build(context.Background(), a, ref)
			if err != nil {
				return err
			}

			if pdf {
				if outFile == "" {
					return fmt.Errorf("--pdf requires --out")
				}
				data, err := reportingAdapter.NewPDFExporter().Export(report)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outFile, data, 0o644); err != nil {
					return err
				}
				opts.logger.Infow("report written", "file", outFile, "bytes", len(data))
				fmt.Fprintln(cmd.OutOrStdout(), outFile)
				return nil
			}

			return opts.render(cmd.OutOrStdout(), report, func(w io.Writer) {
				fmt.Fprintf(w, "Report %s\n", report.ID)
				fmt.Fprintf(w, "Shared:     %s\n", report.Shared)
				scoreLines(w, report.Scores)
				for _, warning := range report.Warnings {
					fmt.Fprintf(w, "Warning:    %s\n", warning)
				}
				for _, d := range report.Drivers {
					fmt.Fprintf(w, "Driver %d:   %s (%.0f%%)\n", d.Rank, d.Name, d.Contribution*100)
				}
				for _, r := range report.Recommendations {
					fmt.Fprintf(w, "[%s] %s\n", r.Priority, r.Title)
				}
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "assessment JSON file, - for stdin")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "write a PDF instead of printing")
	cmd.Flags().StringVar(&outFile, "out", "", "PDF output path")
	return cmd
}
