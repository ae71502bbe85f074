package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
)

type solveOpts struct {
	src, dst string
	fit      string
	size     string
}

func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute a transform from point correspondences or a viewport fit",
		Long: `Solve prints a transform attribute value as a JSON array [m00,m10,m01,m11,m02,m12].

With --src and --dst it finds the affine transform taking three source points
onto three destination points. With --fit and --size it fits a visible area
into a viewport of the given size, preserving the aspect ratio.`,
		Example: `  canopy solve --src "0,0 1,0 0,1" --dst "10,10 12,10 10,12"
  canopy solve --fit "0,0,100,50" --size "200,200"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := runSolve(&opts)
			if err != nil {
				return err
			}
			out, err := json.Marshal(t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			loggerFromContext(cmd.Context()).Debug("solved transform", "transform", t.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.src, "src", "", `three source points, "x,y x,y x,y"`)
	cmd.Flags().StringVar(&opts.dst, "dst", "", `three destination points, "x,y x,y x,y"`)
	cmd.Flags().StringVar(&opts.fit, "fit", "", `visible area to fit, "x,y,width,height"`)
	cmd.Flags().StringVar(&opts.size, "size", "", `viewport size, "width,height"`)
	cmd.MarkFlagsRequiredTogether("src", "dst")
	cmd.MarkFlagsRequiredTogether("fit", "size")
	cmd.MarkFlagsMutuallyExclusive("src", "fit")
	cmd.MarkFlagsOneRequired("src", "fit")

	return cmd
}

func runSolve(opts *solveOpts) (canopy.Transform, error) {
	if opts.fit != "" {
		r, err := parseNumbers(opts.fit, 4)
		if err != nil {
			return canopy.Transform{}, fmt.Errorf("--fit: %w", err)
		}
		s, err := parseNumbers(opts.size, 2)
		if err != nil {
			return canopy.Transform{}, fmt.Errorf("--size: %w", err)
		}
		return canopy.ViewportTransform(canopy.Rect{X: r[0], Y: r[1], Width: r[2], Height: r[3]}, s[0], s[1])
	}
	src, err := parseTriangle(opts.src)
	if err != nil {
		return canopy.Transform{}, fmt.Errorf("--src: %w", err)
	}
	dst, err := parseTriangle(opts.dst)
	if err != nil {
		return canopy.Transform{}, fmt.Errorf("--dst: %w", err)
	}
	return canopy.SolveTransform(src, dst)
}

// parseTriangle parses three whitespace-separated "x,y" points.
func parseTriangle(s string) ([3]canopy.Point2D, error) {
	var pts [3]canopy.Point2D
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return pts, fmt.Errorf("want 3 points, got %d", len(fields))
	}
	for i, f := range fields {
		xy, err := parseNumbers(f, 2)
		if err != nil {
			return pts, err
		}
		pts[i] = canopy.Point2D{X: xy[0], Y: xy[1]}
	}
	return pts, nil
}

// parseNumbers parses exactly n comma-separated numbers.
func parseNumbers(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out[i] = v
	}
	return out, nil
}
