package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"

	assignmentstore "github.com/dalemusser/officehub/internal/app/store/assignments"
	candidatestore "github.com/dalemusser/officehub/internal/app/store/candidates"
	"github.com/dalemusser/officehub/internal/domain/models"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"gopkg.in/yaml.v3"
)

var (
	reportFormat string
	topLimit     int64
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print recruitment and sales reports",
}

var reportStagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Candidates per recruitment stage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
			counts, err := candidatestore.New(db).CountByStage(ctx)
			if err != nil {
				return err
			}
			return renderStages(cmd.OutOrStdout(), reportFormat, counts)
		})
	},
}

var reportLoadCmd = &cobra.Command{
	Use:   "rm-load",
	Short: "Prospects assigned to each relationship manager",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
			load, err := assignmentstore.New(db).Load(ctx)
			if err != nil {
				return err
			}
			return renderLoad(cmd.OutOrStdout(), reportFormat, load)
		})
	},
}

var reportTopCmd = &cobra.Command{
	Use:   "top",
	Short: "Highest scoring candidates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if topLimit <= 0 {
			return fmt.Errorf("--limit must be positive")
		}
		return withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
			top, err := candidatestore.New(db).Top(ctx, topLimit)
			if err != nil {
				return err
			}
			return renderTop(cmd.OutOrStdout(), reportFormat, top)
		})
	},
}

func init() {
	reportCmd.PersistentFlags().StringVarP(&reportFormat, "output", "o", "table", "Output format: table or yaml")
	reportTopCmd.Flags().Int64Var(&topLimit, "limit", 10, "Number of candidates to list")
	reportCmd.AddCommand(reportStagesCmd, reportLoadCmd, reportTopCmd)
}

type stageRow struct {
	Stage string `yaml:"stage"`
	Label string `yaml:"label"`
	Count int64  `yaml:"count"`
}

type topRow struct {
	Rank       int    `yaml:"rank"`
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Stage      string `yaml:"stage"`
	TotalMarks int    `yaml:"total_marks"`
}

func checkFormat(format string) error {
	switch format {
	case "table", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format %q (want table or yaml)", format)
}

// renderStages lists stages in pipeline order, followed by any stored stage
// the model no longer knows about.
func renderStages(w io.Writer, format string, counts map[string]int64) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	rows := make([]stageRow, 0, len(counts))
	seen := make(map[string]bool, len(models.CandidateStages))
	var total int64
	for _, st := range models.CandidateStages {
		seen[st] = true
		rows = append(rows, stageRow{Stage: st, Label: models.CandidateStageLabel(st), Count: counts[st]})
		total += counts[st]
	}
	var extra []string
	for st := range counts {
		if !seen[st] {
			extra = append(extra, st)
		}
	}
	sort.Strings(extra)
	for _, st := range extra {
		rows = append(rows, stageRow{Stage: st, Label: st, Count: counts[st]})
		total += counts[st]
	}

	if format == "yaml" {
		return encodeYAML(w, rows)
	}
	color.New(color.FgYellow).Fprintln(w, "Candidates by Stage")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Stage", "Candidates"})
	for _, r := range rows {
		table.Append([]string{r.Label, strconv.FormatInt(r.Count, 10)})
	}
	table.SetFooter([]string{"Total", strconv.FormatInt(total, 10)})
	table.Render()
	return nil
}

func renderLoad(w io.Writer, format string, load []assignmentstore.RMLoad) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "yaml" {
		return encodeYAML(w, load)
	}
	color.New(color.FgYellow).Fprintln(w, "Prospects per Relationship Manager")
	if len(load) == 0 {
		fmt.Fprintln(w, "No prospects are assigned.")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"RM", "RM ID", "Prospects"})
	for _, l := range load {
		table.Append([]string{l.RMName, l.RMID.Hex(), strconv.FormatInt(l.Prospects, 10)})
	}
	table.Render()
	return nil
}

func renderTop(w io.Writer, format string, top []models.Candidate) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	rows := make([]topRow, len(top))
	for i, c := range top {
		rows[i] = topRow{
			Rank:       i + 1,
			ID:         c.ID.Hex(),
			Name:       c.FullName,
			Stage:      models.CandidateStageLabel(c.CurrentStage),
			TotalMarks: c.TotalMarks,
		}
	}
	if format == "yaml" {
		return encodeYAML(w, rows)
	}
	color.New(color.FgYellow).Fprintf(w, "Top %d Candidates\n", len(rows))
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Name", "Stage", "Marks"})
	for _, r := range rows {
		table.Append([]string{strconv.Itoa(r.Rank), r.Name, r.Stage, strconv.Itoa(r.TotalMarks)})
	}
	table.Render()
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
