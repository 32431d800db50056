package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lcalzada-xor/prr/internal/app"
	"github.com/lcalzada-xor/prr/internal/core/domain"
	"github.com/lcalzada-xor/prr/internal/core/services/codec"
	"github.com/lcalzada-xor/prr/internal/core/services/scoring"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// options shared by every subcommand
type options struct {
	debug  bool
	output string

	logger *zap.SugaredLogger
	scorer *scoring.Engine
	codec  *codec.Codec
}

// NewRootCmd builds the prrctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{
		scorer: scoring.NewEngine(),
		codec:  codec.New(),
	}

	root := &cobra.Command{
		Use:           "prrctl",
		Short:         "prrctl - offline privacy and security risk rating",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unsupported output %q (text, json, yaml)", opts.output)
			}
			logger, err := newLogger(opts.debug)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "verbose logging on stderr")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json or yaml")

	root.AddCommand(
		newScoreCmd(opts),
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newReportCmd(opts),
	)
	return root
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var logConfig zap.Config
	if debug {
		logConfig = zap.NewDevelopmentConfig()
	} else {
		logConfig = zap.NewProductionConfig()
		logConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logConfig.Encoding = "console"
	logConfig.OutputPaths = []string{"stderr"}

	rawLogger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return rawLogger.Sugar(), nil
}

// readAssessment loads an assessment from a shared string argument or from a JSON
// file ("-" reads stdin). Exactly one source must be given.
func (o *options) readAssessment(cmd *cobra.Command, args []string, input string) (domain.Assessment, string, error) {
	switch {
	case len(args) == 1 && input != "":
		return domain.Assessment{}, "", fmt.Errorf("pass either a shared code or --input, not both")
	case len(args) == 1:
		ref, a, err := o.codec.DecodeShared(args[0])
		if err != nil {
			o.logger.Debugw("decode rejected", "input", args[0], "reason", domain.DecodeFailureReason(err))
			return domain.Assessment{}, "", fmt.Errorf("decode %q: %w", args[0], err)
		}
		return a, ref, nil
	case input != "":
		var r io.Reader = cmd.InOrStdin()
		if input != "-" {
			f, err := os.Open(input)
			if err != nil {
				return domain.Assessment{}, "", err
			}
			defer f.Close()
			r = f
		}
		var a domain.Assessment
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&a); err != nil {
			return domain.Assessment{}, "", fmt.Errorf("read assessment: %w", err)
		}
		o.logger.Debugw("assessment loaded", "source", input)
		return a.Clamp(), "", nil
	}
	return domain.Assessment{}, "", fmt.Errorf("missing input: pass a shared code or --input")
}

// render writes v in the selected output format. text uses the given printer.
func (o *options) render(w io.Writer, v interface{}, text func(io.Writer)) error {
	switch o.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		// go through the JSON shape so both formats share field names
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return err
		}
		blockStyle(&doc)

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&doc); err != nil {
			return err
		}
		return enc.Close()
	}
	text(w)
	return nil
}

// blockStyle drops the flow and quoting styles a JSON source leaves on the tree.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func scoreLines(w io.Writer, s domain.Scores) {
	fmt.Fprintf(w, "Likelihood: %s\n", s.Likelihood)
	fmt.Fprintf(w, "Impact:     %s\n", s.Impact)
	fmt.Fprintf(w, "Overall:    %s\n", s.OverallBand)
	if s.OverallBand != s.BaseOverallBand {
		fmt.Fprintf(w, "Computed:   %s (overridden)\n", s.BaseOverallBand)
	}
	var flags []string
	if s.Flags.ForcedCriticalEligible {
		flags = append(flags, "forced-critical")
	}
	if s.Flags.OverallLoweredFromCritical {
		flags = append(flags, "lowered-from-critical")
	}
	if len(flags) > 0 {
		fmt.Fprintf(w, "Flags:      %s\n", strings.Join(flags, ", "))
	}
}
