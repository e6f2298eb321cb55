package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-transform-mcp/internal/ops"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the operations accepted by apply and image_transform",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range ops.Names() {
			fmt.Fprintf(w, "%s\t%s\n", name, ops.Describe(name))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(opsCmd)
}
