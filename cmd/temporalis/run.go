// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/temporalis/distribution"
	"github.com/katalvlaran/temporalis/inventory"
	"github.com/katalvlaran/temporalis/lca"
	"github.com/katalvlaran/temporalis/sqlitestore"
	"github.com/katalvlaran/temporalis/timeline"
	"github.com/katalvlaran/temporalis/traversal"
)

const dateLayout = "2006-01-02"

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [inventory.yaml]",
		Short: "Print the emission timeline of the inventory's demand",
		Long: "Run calculates the static LCA of the demand declared in the inventory, walks its supply graph " +
			"and prints every emission spread over time. Without a file the inventory is read from --db.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	f := cmd.Flags()
	f.String(keyStart, "", "date of the functional unit, YYYY-MM-DD (default today)")
	f.Float64(keyCutoff, traversal.DefaultCutoff, "node cutoff relative to the total score")
	f.Float64(keyBiosphereCutoff, traversal.DefaultBiosphereCutoff, "flow cutoff relative to the total score")
	f.Int(keyMaxCalculations, traversal.DefaultMaxCalculations, "maximum number of node expansions")
	f.Int(keySimplifyThreshold, distribution.DefaultSimplifyThreshold, "points above which flow distributions are clustered")
	f.Bool(keyDrawFromMatrix, true, "take edge magnitudes from the LCA matrices")
	f.String(keyFormat, "table", "output format: table or json")
	f.Bool(keyYearly, false, "sum rows per calendar year")

	return cmd
}

func (a *app) run(ctx context.Context, w io.Writer, args []string) error {
	inv, store, done, err := a.openInventory(ctx, args)
	if err != nil {
		return err
	}
	defer done()

	l, err := lca.New(inv, nil, lca.WithLogger(a.log))
	if err != nil {
		return err
	}
	if err = l.Calculate(); err != nil {
		return err
	}

	opts, err := a.traversalOptions(inv)
	if err != nil {
		return err
	}
	res, err := traversal.BuildTimeline(ctx, l, l, store, opts...)
	if err != nil {
		return err
	}

	table, err := res.Timeline.Table()
	if err != nil {
		return err
	}
	if a.v.GetBool(keyYearly) {
		table = table.SumByYear()
	}

	return a.print(w, inv, table)
}

func (a *app) traversalOptions(inv *inventory.Inventory) ([]traversal.Option, error) {
	start := time.Now().UTC()
	if s := a.v.GetString(keyStart); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, errors.Wrapf(err, "start %q", s)
		}
		start = t
	}
	cutoff, bioCutoff := a.v.GetFloat64(keyCutoff), a.v.GetFloat64(keyBiosphereCutoff)
	if cutoff < 0 || bioCutoff < 0 {
		return nil, errors.Newf("cutoffs must be non-negative, got %v and %v", cutoff, bioCutoff)
	}
	maxCalc, threshold := a.v.GetInt(keyMaxCalculations), a.v.GetInt(keySimplifyThreshold)
	if maxCalc <= 0 || threshold <= 0 {
		return nil, errors.Newf("max calculations and simplify threshold must be positive, got %d and %d", maxCalc, threshold)
	}

	return []traversal.Option{
		traversal.WithStart(start),
		traversal.WithCutoff(cutoff),
		traversal.WithBiosphereCutoff(bioCutoff),
		traversal.WithMaxCalculations(maxCalc),
		traversal.WithSimplify(distribution.WithThreshold(threshold)),
		traversal.WithDrawFromMatrix(a.v.GetBool(keyDrawFromMatrix)),
		traversal.WithStaticActivities(inv.StaticActivities()),
		traversal.WithLogger(a.log),
	}, nil
}

// openInventory reads the inventory from the YAML file in args or from the
// database, and returns the exchange store to traverse it with.
func (a *app) openInventory(ctx context.Context, args []string) (*inventory.Inventory, traversal.ExchangeStore, func(), error) {
	reg := distribution.NewRegistry()
	if len(args) == 1 {
		inv, err := inventory.LoadFile(args[0], reg)
		if err != nil {
			return nil, nil, nil, err
		}
		a.log.Debug("inventory loaded", zap.String("file", args[0]))

		return inv, inventory.NewMemoryStore(inv), func() {}, nil
	}

	path := a.v.GetString(keyDB)
	if path == "" {
		return nil, nil, nil, errors.New("no inventory: pass a YAML file or --db")
	}
	s, err := sqlitestore.Open(ctx, path, reg, sqlitestore.WithLogger(a.log))
	if err != nil {
		return nil, nil, nil, err
	}
	inv, err := s.Load(ctx)
	if err != nil {
		_ = s.Close()
		return nil, nil, nil, err
	}

	return inv, s, func() { _ = s.Close() }, nil
}

func (a *app) print(w io.Writer, inv *inventory.Inventory, table timeline.Table) error {
	switch format := a.v.GetString(keyFormat); format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(table)

	case "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tAMOUNT\tFLOW\tACTIVITY")
		for _, r := range table {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				r.Date().Format(dateLayout),
				strconv.FormatFloat(r.Amount, 'g', 6, 64),
				name(inv, r.Flow),
				name(inv, r.Activity))
		}
		fmt.Fprintf(tw, "TOTAL\t%s\t\t\n", strconv.FormatFloat(table.Total(), 'g', 6, 64))
		return tw.Flush()

	default:
		return errors.Newf("unknown format %q", format)
	}
}

func name(inv *inventory.Inventory, id int) string {
	if act, ok := inv.Activity(id); ok {
		return act.Label()
	}

	return strconv.Itoa(id)
}
