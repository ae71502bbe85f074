package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/ebitenrender"
)

type viewOpts struct {
	size    string
	clear   string
	showFPS bool
	shots   string
}

func (c *CLI) viewCommand() *cobra.Command {
	opts := viewOpts{size: "640,480", clear: "white"}
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Open a window showing a scene document",
		Long:  `View renders a document with Ebitengine. Documents whose root is not a Viewport are wrapped in one of --size.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := loadNode(cmd, args[0])
			if err != nil {
				return err
			}
			v, err := asViewport(n, opts.size)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("opening viewer", "width", v.Width(), "height", v.Height())
			return ebitenrender.Run(v, ebitenrender.RunConfig{
				Title:      fmt.Sprintf("%s - %s", appName, args[0]),
				ClearColor: opts.clear,
				ShowFPS:    opts.showFPS,
				Resizable:  true,

				ScreenshotDir: opts.shots,
			})
		},
	}
	cmd.Flags().StringVar(&opts.size, "size", opts.size, `window size for non-viewport roots, "width,height"`)
	cmd.Flags().StringVar(&opts.clear, "clear", opts.clear, "background color")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "show frame rate")
	cmd.Flags().StringVar(&opts.shots, "screenshots", "", "directory for F12 screenshots")
	return cmd
}

// asViewport returns n if it is a viewport and otherwise wraps it in the
// chain of containers it needs to be displayed.
func asViewport(n canopy.Node, size string) (*canopy.Viewport, error) {
	if v, ok := n.(*canopy.Viewport); ok {
		return v, nil
	}
	wh, err := parseNumbers(size, 2)
	if err != nil {
		return nil, fmt.Errorf("--size: %w", err)
	}
	v := canopy.NewViewport(wh[0], wh[1])
	switch n := n.(type) {
	case *canopy.Scene:
		v.Add(n)
	case *canopy.Layer:
		s := canopy.NewScene()
		s.Add(n)
		v.Add(s)
	default:
		l := canopy.NewLayer()
		l.Add(n)
		s := canopy.NewScene()
		s.Add(l)
		v.Add(s)
	}
	return v, nil
}
