package cmd

import (
	"fmt"
	"io"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/spf13/cobra"
)

type codeOutput struct {
	FindingRef string            `json:"findingRef,omitempty"`
	Code       string            `json:"code"`
	Shared     string            `json:"shared"`
	Assessment domain.Assessment `json:"assessment"`
	Scores     domain.Scores     `json:"scores"`
}

func (o *options) codeOutput(ref string, a domain.Assessment) codeOutput {
	code := o.codec.Encode(a)
	return codeOutput{
		FindingRef: ref,
		Code:       code,
		Shared:     o.codec.Share(ref, code),
		Assessment: a,
		Scores:     o.scorer.Score(a),
	}
}

func newEncodeCmd(opts *options) *cobra.Command {
	var input, ref string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode an assessment JSON file into a share code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := opts.readAssessment(cmd, nil, input)
			if err != nil {
				return err
			}

			out := opts.codeOutput(domain.SanitizeFindingRef(ref), a)
			if !domain.IsValidFindingRef(ref) {
				opts.logger.Warnw("finding reference sanitized", "from", ref, "to", out.FindingRef)
			}

			return opts.render(cmd.OutOrStdout(), out, func(w io.Writer) {
				fmt.Fprintln(w, out.Shared)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "assessment JSON file, - for stdin")
	cmd.Flags().StringVar(&ref, "ref", "", "finding reference to prefix")
	return cmd
}
