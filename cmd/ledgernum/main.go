// Command ledgernum inspects, hashes and stores arbitrary precision ledger
// values.
package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"

	"github.com/calebcase/ledgernum/store"
)

// Error is the class of command errors.
var Error = errs.Class("ledgernum")

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

type app struct {
	cfg     *viper.Viper
	cfgFile string
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{
		cfg: viper.New(),
	}

	root := &cobra.Command{
		Use:          "ledgernum",
		Short:        "Inspect, hash and store arbitrary precision ledger values",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.ledgernum.yaml)")
	flags.String("db", "ledgernum.db", "SQLite database path")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	_ = a.cfg.BindPFlag("db", flags.Lookup("db"))
	_ = a.cfg.BindPFlag("log-level", flags.Lookup("log-level"))

	a.cfg.SetEnvPrefix("LEDGERNUM")
	a.cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.cfg.AutomaticEnv()

	root.AddCommand(
		newIntCmd(a),
		newNormalizeCmd(a),
		newHexCmd(a),
		newHashCmd(a),
		newDeploymentCmd(a),
		newEntryCmd(a),
		newGraftCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) (err error) {
	if a.cfgFile != "" {
		a.cfg.SetConfigFile(a.cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return Error.Wrap(err)
		}

		a.cfg.AddConfigPath(home)
		a.cfg.SetConfigName(".ledgernum")
	}

	err = a.cfg.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return Error.New("reading config: %v", err)
		}
	}

	var level slog.Level

	err = level.UnmarshalText([]byte(a.cfg.GetString("log-level")))
	if err != nil {
		return Error.Wrap(err)
	}

	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))

	return nil
}

func (a *app) openStore() (*store.Store, error) {
	return store.Open(store.Config{
		Path:   a.cfg.GetString("db"),
		Logger: a.logger,
	})
}
