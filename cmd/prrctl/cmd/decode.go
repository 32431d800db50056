package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newDecodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <shared-code>",
		Short: "Validate a shared code and print the assessment it carries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ref, err := opts.readAssessment(cmd, args, "")
			if err != nil {
				return err
			}

			out := opts.codeOutput(ref, a)
			return opts.render(cmd.OutOrStdout(), out, func(w io.Writer) {
				if out.FindingRef != "" {
					fmt.Fprintf(w, "Finding:    %s\n", out.FindingRef)
				}
				fmt.Fprintf(w, "Code:       %s\n", out.Code)
				fmt.Fprintf(w, "Scope:      %s\n", a.Scope)
				fmt.Fprintf(w, "Data:       %s\n", a.DataType)
				scoreLines(w, out.Scores)
			})
		},
	}
}
