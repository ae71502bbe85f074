package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
)

func (c *CLI) treeCommand() *cobra.Command {
	var showAttrs bool
	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the node tree of a scene document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := loadNode(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), buildTree(n, showAttrs))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showAttrs, "attrs", "a", false, "show every attribute value")
	return cmd
}

func buildTree(n canopy.Node, showAttrs bool) *tree.Tree {
	t := tree.Root(nodeLabel(n, showAttrs)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(styleDim)
	if c, ok := n.(canopy.Container); ok {
		for _, child := range c.Children() {
			if _, isContainer := child.(canopy.Container); isContainer {
				t.Child(buildTree(child, showAttrs))
			} else {
				t.Child(nodeLabel(child, showAttrs))
			}
		}
	}
	return t
}

// nodeLabel renders "Type #id name" followed by attributes when requested.
func nodeLabel(n canopy.Node, showAttrs bool) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(n.TypeName()))
	if id := n.Attributes().ID(); id != "" {
		b.WriteString(" " + styleNumber.Render("#"+id))
	}
	if name := n.Attributes().Name(); name != "" {
		b.WriteString(" " + styleValue.Render(name))
	}
	if !showAttrs {
		return b.String()
	}
	attrs := n.Attributes().Map()
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		if k == canopy.AttrID.Property() || k == canopy.AttrName.Property() {
			continue
		}
		b.WriteString(" " + styleDim.Render(fmt.Sprintf("%s=%v", k, attrs[k])))
	}
	return b.String()
}
