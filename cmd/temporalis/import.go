// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/inventory"
	"github.com/katalvlaran/temporalis/sqlitestore"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <inventory.yaml>",
		Short: "Store a YAML inventory in the --db database, replacing its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.v.GetString(keyDB)
			if path == "" {
				return errors.New("import needs --db")
			}
			reg := distribution.NewRegistry()
			inv, err := inventory.LoadFile(args[0], reg)
			if err != nil {
				return err
			}

			s, err := sqlitestore.Open(cmd.Context(), path, reg, sqlitestore.WithLogger(a.log))
			if err != nil {
				return err
			}
			defer s.Close()
			if err = s.Save(cmd.Context(), inv); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d activities and %d exchanges into %s\n",
				len(inv.Activities), len(inv.Exchanges), path)
			return nil
		},
	}
}
