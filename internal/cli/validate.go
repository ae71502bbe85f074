package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
)

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file...]",
		Short: "Report every validation error in scene documents",
		Long:  `Validate deserializes each document in collect-all mode and lists every violation with its document path. Use "-" to read standard input.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				ok, err := validateFile(cmd, path)
				if err != nil {
					return err
				}
				if !ok {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}
}

// validateFile prints the result for one document and reports whether it
// was valid. Only read errors are returned.
func validateFile(cmd *cobra.Command, path string) (bool, error) {
	w := cmd.OutOrStdout()
	data, err := readInput(cmd, path)
	if err != nil {
		return false, err
	}

	ctx := canopy.NewValidationContext().SetStopOnError(false)
	n, err := canopy.Parse(data, ctx)
	if err != nil && !errors.As(err, new(*canopy.ValidationError)) {
		printError(w, "%s", path)
		printDetail(w, "%v", err)
		return false, nil
	}

	violations := ctx.Errors()
	if len(violations) == 0 {
		printSuccess(w, "%s %s", path, styleDim.Render(fmt.Sprintf("(%d nodes)", countNodes(n))))
		return true, nil
	}
	printError(w, "%s %s", path, styleWarning.Render(fmt.Sprintf("%d errors", len(violations))))
	for _, v := range violations {
		at := v.Path
		if at == "" {
			at = "(root)"
		}
		printDetail(w, "%s %s %s: %s", at, iconArrow, v.Kind, v.Message)
	}
	return false, nil
}

func countNodes(n canopy.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	canopy.Walk(n, func(canopy.Node) bool {
		count++
		return true
	})
	return count
}
