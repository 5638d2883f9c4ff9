package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCallCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:     "call <tool> [json-args]",
		Short:   "Invoke an MCP tool directly and print its JSON result",
		Example: `  fathom-mcp call list_meetings '{"limit":5,"search":"acme"}'`,
		Args:    cobra.RangeArgs(1, 2),
		PreRunE: requireConfig(deps),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := json.RawMessage(`{}`)
			if len(args) == 2 {
				raw = json.RawMessage(args[1])
			}

			out, err := deps.MCPServer.HandleToolJSON(cmd.Context(), args[0], raw)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			var buf bytes.Buffer
			if err := json.Indent(&buf, out, "", "  "); err != nil {
				return err
			}
			buf.WriteByte('\n')
			_, err = deps.Out.Write(buf.Bytes())
			return err
		},
	}
}
