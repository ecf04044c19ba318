// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Configuration keys. Each can come from a flag, from .temporalis.yaml or
// from a TEMPORALIS_ environment variable (dashes become underscores).
const (
	keyConfig            = "config"
	keyVerbose           = "verbose"
	keyDB                = "db"
	keyStart             = "start"
	keyCutoff            = "cutoff"
	keyBiosphereCutoff   = "biosphere-cutoff"
	keyMaxCalculations   = "max-calculations"
	keySimplifyThreshold = "simplify-threshold"
	keyDrawFromMatrix    = "draw-from-matrix"
	keyFormat            = "format"
	keyYearly            = "yearly"
	keyTolerance         = "tolerance"
)

var envReplacer = strings.NewReplacer("-", "_")

// app carries what every subcommand shares.
type app struct {
	v   *viper.Viper
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "temporalis",
		Short:         "Dynamic life cycle assessment with temporal distributions",
		Long:          "Temporalis walks the supply chain of a functional unit and spreads every emission over time.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(cmd); err != nil {
				return err
			}
			return a.initLogger()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.String(keyConfig, "", "config file (default .temporalis.yaml)")
	pf.BoolP(keyVerbose, "v", false, "development logging at debug level")
	pf.String(keyDB, "", "SQLite inventory database")

	root.AddCommand(newRunCmd(a), newImportCmd(a), newCheckCmd(a))

	return root
}

// initConfig binds the flags of cmd and reads the config file, if any.
func (a *app) initConfig(cmd *cobra.Command) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "bind flags")
	}
	if cfgFile := a.v.GetString(keyConfig); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.SetConfigName(".temporalis")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
	}

	a.v.SetEnvPrefix("TEMPORALIS")
	a.v.SetEnvKeyReplacer(envReplacer)
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "read config")
		}
	}

	return nil
}

func (a *app) initLogger() error {
	var (
		l   *zap.Logger
		err error
	)
	if a.v.GetBool(keyVerbose) {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return errors.Wrap(err, "build logger")
	}
	a.log = l

	return nil
}
