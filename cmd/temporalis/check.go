// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/temporalis/distribution"
)

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [inventory.yaml]",
		Short: "Check that every exchange distribution sums to one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, _, done, err := a.openInventory(cmd.Context(), args)
			if err != nil {
				return err
			}
			defer done()

			if err = inv.CheckExchanges(a.v.GetFloat64(keyTolerance)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d activities, %d exchanges\n", len(inv.Activities), len(inv.Exchanges))
			return nil
		},
	}
	cmd.Flags().Float64(keyTolerance, distribution.DefaultCongruenceTolerance, "relative tolerance on distribution totals")

	return cmd
}
