package cmd

import (
	"io"

	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/spf13/cobra"
)

type scoreOutput struct {
	Assessment domain.Assessment `json:"assessment"`
	Scores     domain.Scores     `json:"scores"`
}

func newScoreCmd(opts *options) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "score [shared-code]",
		Short: "Score a shared code or an assessment JSON file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := opts.readAssessment(cmd, args, input)
			if err != nil {
				return err
			}

			scores := opts.scorer.Score(a)
			opts.logger.Debugw("scored", "band", scores.OverallBand.String())

			return opts.render(cmd.OutOrStdout(), scoreOutput{Assessment: a, Scores: scores}, func(w io.Writer) {
				scoreLines(w, scores)
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "assessment JSON file, - for stdin")
	return cmd
}
