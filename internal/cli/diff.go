package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
)

// errDocumentsDiffer is returned by diff --exit-code.
var errDocumentsDiffer = errors.New("documents differ")

func (c *CLI) diffCommand() *cobra.Command {
	var exitCode bool
	cmd := &cobra.Command{
		Use:   "diff [from] [to]",
		Short: "Print the JSON merge patch turning one scene into another",
		Long:  `Diff deserializes both documents and prints the RFC 7386 merge patch between their normalized JSON forms. Key order and formatting never count as differences.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := documentPatch(cmd, args[0], args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if patch == nil {
				printSuccess(w, "equivalent")
				return nil
			}
			fmt.Fprintln(w, string(patch))
			if exitCode {
				return errDocumentsDiffer
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "fail when the documents differ")
	return cmd
}

// documentPatch returns the indented merge patch from one document to the
// other, or nil when they are equivalent.
func documentPatch(cmd *cobra.Command, from, to string) ([]byte, error) {
	a, err := loadJSON(cmd, from)
	if err != nil {
		return nil, err
	}
	b, err := loadJSON(cmd, to)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("create merge patch: %w", err)
	}
	if string(patch) == "{}" {
		return nil, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, patch, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func loadJSON(cmd *cobra.Command, path string) ([]byte, error) {
	n, err := loadNode(cmd, path)
	if err != nil {
		return nil, err
	}
	return canopy.ToJSON(n)
}
