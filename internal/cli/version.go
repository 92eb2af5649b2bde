package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/origin-mobile/satchel/pkg/satchel"
)

const modulePath = "github.com/origin-mobile/satchel"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the satchel version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "satchel v%s\nmodule: %s\n", satchel.Version, modulePath)
			return nil
		},
	}
}
