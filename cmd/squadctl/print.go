package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/dwrs/internal/domain/model"
	"github.com/okian/dwrs/internal/domain/role"
	"github.com/okian/dwrs/internal/domain/squad"
)

type scoreRow struct {
	Player string              `json:"player"`
	ID     string              `json:"id"`
	Scores []model.ScoreResult `json:"scores"`
	Errors []string            `json:"errors,omitempty"`
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printCatalogue(w io.Writer, roles []*role.Definition, tactics []role.Tactic) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tNAME\tPOSITIONS\tKEY")
	for _, d := range roles {
		positions := make([]string, len(d.Positions))
		for i, p := range d.Positions {
			positions[i] = string(p)
		}
		key := make([]string, len(d.Key))
		for i, k := range d.Key {
			key[i] = string(k)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, d.Display, strings.Join(positions, ","), strings.Join(key, ", "))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "TACTIC\tSLOTS")
	for _, t := range tactics {
		slots := make([]string, len(t.Slots))
		for i, s := range t.Slots {
			slots[i] = string(s.Position) + ":" + s.Role
		}
		fmt.Fprintf(tw, "%s\t%s\n", t.Name, strings.Join(slots, " "))
	}
	return tw.Flush()
}

func printScores(w io.Writer, roles []string, rows []scoreRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "ID\tPLAYER\t%s\t\n", strings.Join(roles, "\t"))
	for _, r := range rows {
		cells := make([]string, len(roles))
		for i, name := range roles {
			cells[i] = "-"
			for _, s := range r.Scores {
				if s.Role == name {
					cells[i] = fmt.Sprintf("%.1f", s.Normalized)
				}
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.ID, r.Player, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func printResult(w io.Writer, res *squad.Result) error {
	fmt.Fprintf(w, "== %s ==\n", res.Tactic)
	if err := printLineup(w, "Starting XI", res.StartingXI); err != nil {
		return err
	}
	if err := printLineup(w, "B-team", res.BTeam); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Surplus\tBEST ROLE\tSCORE\tGROUP")
	for _, s := range res.Surplus {
		group := "senior"
		if s.Youth {
			group = "youth"
		}
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\n", s.PlayerName, s.BestRole, s.Normalized, group)
	}
	for _, r := range res.Rejected {
		fmt.Fprintf(tw, "%s\trejected\t-\t%s\n", r.PlayerID, r.Reason)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func printLineup(w io.Writer, title string, l squad.Lineup) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tROLE\tPLAYER\tSCORE\tADJUSTED\n", title)
	for _, p := range l {
		name, score, adjusted := "(gap)", "-", "-"
		if !p.Gap() {
			name = p.PlayerName
			score = fmt.Sprintf("%.1f", p.Normalized)
			adjusted = fmt.Sprintf("%.1f", p.Adjusted)
			if p.FootTieBreak {
				adjusted += " *"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Position, p.Role, name, score, adjusted)
	}
	fmt.Fprintf(tw, "\tTOTAL\t\t\t%.1f\n", l.Total())
	return tw.Flush()
}
