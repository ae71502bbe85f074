package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
)

func (c *CLI) typesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types [type...]",
		Short: "List node types and their attribute sheets",
		Long:  `Types lists every registered node type. Given type names it prints their attribute sheets instead, with required attributes marked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := canopy.DefaultRegistry()
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range reg.TypeNames() {
					f, _ := reg.Lookup(name)
					kind := "node"
					if _, ok := f.(canopy.ContainerFactory); ok {
						kind = "container"
					}
					printKeyValue(w, name, styleDim.Render(kind), 12)
				}
				return nil
			}
			for i, name := range args {
				f, ok := reg.Lookup(name)
				if !ok {
					return fmt.Errorf("unknown type %q", name)
				}
				if i > 0 {
					fmt.Fprintln(w)
				}
				printSheet(cmd, f)
			}
			return nil
		},
	}
}

func printSheet(cmd *cobra.Command, f canopy.Factory) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, styleTitle.Render(f.TypeName()))
	for _, e := range f.AttributeSheet() {
		name := e.Attribute.Property()
		if e.Required {
			name += "*"
		}
		printKeyValue(w, "  "+name, e.Attribute.Type().Name()+" "+styleDim.Render(e.Attribute.Description()), 20)
	}
}
