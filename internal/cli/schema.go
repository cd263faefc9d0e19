package cli

import (
	"bytes"
	"fmt"

	"github.com/agent-sync/agent-sync/internal/schema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := schema.Raw()
			out := cmd.OutOrStdout()
			if _, err := out.Write(raw); err != nil {
				return fmt.Errorf("writing schema: %w", err)
			}
			if !bytes.HasSuffix(raw, []byte("\n")) {
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
