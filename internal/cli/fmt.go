package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
)

type fmtOpts struct {
	yaml      bool
	diff      bool
	assignIDs bool
	output    string
}

func (c *CLI) fmtCommand() *cobra.Command {
	var opts fmtOpts
	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Normalize a scene document",
		Long:  `Fmt validates a document and re-encodes it with sorted keys and without undefined values. Use "-" to read standard input.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.yaml, "yaml", false, "write YAML instead of JSON")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a line diff against the input instead of the result")
	cmd.Flags().BoolVar(&opts.assignIDs, "assign-ids", false, "give nodes without an id a random UUID")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func runFmt(cmd *cobra.Command, path string, opts *fmtOpts) error {
	logger := loggerFromContext(cmd.Context())
	src, err := readInput(cmd, path)
	if err != nil {
		return err
	}
	n, err := canopy.Parse(src, canopy.NewValidationContext())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if opts.assignIDs {
		logger.Debug("assigned ids", "count", canopy.AssignIDs(n))
	}

	var out []byte
	if opts.yaml {
		out, err = canopy.ToYAML(n)
	} else {
		out, err = canopy.ToJSON(n)
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}

	if opts.diff {
		writeLineDiff(cmd.OutOrStdout(), string(src), string(out))
		return nil
	}
	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	logger.Info("wrote document", "path", opts.output)
	return nil
}

// writeLineDiff prints a unified line diff from a to b. Unchanged lines are
// indented, removed lines start with "-" and added lines with "+".
func writeLineDiff(w io.Writer, a, b string) {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffpatch.DiffInsert:
				fmt.Fprintln(w, styleInsert.Render("+"+line))
			case diffpatch.DiffDelete:
				fmt.Fprintln(w, styleDelete.Render("-"+line))
			default:
				fmt.Fprintln(w, " "+line)
			}
		}
	}
}
