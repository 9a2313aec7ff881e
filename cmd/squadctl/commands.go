package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/dwrs/internal/adapters/repository"
	"github.com/okian/dwrs/internal/domain/model"
	"github.com/okian/dwrs/internal/domain/types"
)

var errUsage = errors.New("usage")

func newRolesCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the configured roles and tactics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := f.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if f.json {
				return printJSON(out, map[string]any{"roles": svc.Roles(), "tactics": svc.Tactics()})
			}
			return printCatalogue(out, svc.Roles(), svc.Tactics())
		},
	}
}

func newScoreCmd(f *rootFlags) *cobra.Command {
	var playerIDs []string
	cmd := &cobra.Command{
		Use:     "score ROLE [ROLE...]",
		Short:   "Score players for one or more roles",
		Example: "squadctl score -p configs/players.example.yaml AF-A TM-S",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := f.open(ctx, true)
			if err != nil {
				return err
			}
			pool, err := svc.Roster().Pool(ctx, repository.Filter{IDs: playerIDs})
			if err != nil {
				return err
			}

			rows := make([]scoreRow, 0, len(pool))
			for i := range pool {
				row := scoreRow{Player: pool[i].Name, ID: pool[i].ID, Scores: make([]model.ScoreResult, 0, len(args))}
				for _, roleName := range args {
					res, err := svc.Score(ctx, &pool[i], roleName)
					if err != nil {
						if errors.Is(err, types.ErrConfiguration) {
							return err
						}
						row.Errors = append(row.Errors, fmt.Sprintf("%s: %v", roleName, err))
						continue
					}
					row.Scores = append(row.Scores, res)
				}
				rows = append(rows, row)
			}
			if f.json {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			return printScores(cmd.OutOrStdout(), args, rows)
		},
	}
	cmd.Flags().StringSliceVar(&playerIDs, "id", nil, "restrict to these player ids")
	return cmd
}

func newAssignCmd(f *rootFlags) *cobra.Command {
	var (
		club   string
		maxAge int
	)
	cmd := &cobra.Command{
		Use:     "assign TACTIC [TACTIC...]",
		Short:   "Pick a starting XI and B-team for each tactic",
		Example: "squadctl assign -p configs/players.example.yaml 4-4-2 --max-age 21",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if maxAge < 0 {
				return fmt.Errorf("%w: --max-age must not be negative", errUsage)
			}
			ctx := cmd.Context()
			svc, err := f.open(ctx, true)
			if err != nil {
				return err
			}
			cmp, err := svc.Compare(ctx, args, repository.Filter{Club: club, MaxAge: maxAge})
			if err != nil {
				return err
			}
			if f.json {
				return printJSON(cmd.OutOrStdout(), cmp)
			}
			for i := range cmp {
				if err := printResult(cmd.OutOrStdout(), &cmp[i].Result); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&club, "club", "", "only consider players of this club")
	cmd.Flags().IntVar(&maxAge, "max-age", 0, "exclude players older than this (youth variant)")
	return cmd
}
