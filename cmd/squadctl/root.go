package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/dwrs/internal/adapters/definitions"
	service "github.com/okian/dwrs/internal/app"
	"github.com/okian/dwrs/internal/config"
	"github.com/okian/dwrs/pkg/logger"
)

type rootFlags struct {
	definitions string
	players     string
	logLevel    string
	json        bool
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:          "squadctl",
		Short:        "Rate players for tactical roles and pick squads",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return err
			}
			return logger.SetLevelString(f.logLevel)
		},
	}
	cmd.PersistentFlags().StringVarP(&f.definitions, "definitions", "d", "", "role and tactic catalogue (default from DWRS_DEFINITIONS_FILE or configs/definitions.yaml)")
	cmd.PersistentFlags().StringVarP(&f.players, "players", "p", "", "players YAML file")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&f.json, "json", false, "print JSON instead of tables")

	cmd.AddCommand(
		newRolesCmd(f),
		newScoreCmd(f),
		newAssignCmd(f),
	)
	return cmd
}

// open builds a service from the layered configuration, the catalogue and
// the players file when one is given.
func (f *rootFlags) open(ctx context.Context, needPlayers bool) (*service.Service, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if f.definitions != "" {
		cfg.DefinitionsFile = f.definitions
	}
	cat, err := definitions.LoadCatalogue(ctx, cfg.DefinitionsFile)
	if err != nil {
		return nil, err
	}
	svc, err := service.New(cfg, cat, service.WithLogger(logger.Named("squadctl")))
	if err != nil {
		return nil, err
	}

	path := f.players
	if path == "" {
		path = cfg.RosterFile
	}
	if path == "" {
		if needPlayers {
			return nil, fmt.Errorf("%w: --players is required", errUsage)
		}
		return svc, nil
	}
	players, err := definitions.LoadPlayers(ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := svc.AddPlayers(ctx, players...); err != nil {
		return nil, err
	}
	return svc, nil
}
