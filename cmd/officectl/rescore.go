package main

import (
	"context"

	candidatestore "github.com/dalemusser/officehub/internal/app/store/candidates"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var rescoreDryRun bool

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute total marks for every candidate",
	Long: `Recomputes each candidate's total marks from the stored rubric inputs
and writes back the ones that differ. Run after the rubric changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db *mongo.Database) error {
			res, err := candidatestore.New(db).RescoreAll(ctx, rescoreDryRun)
			if err != nil {
				return err
			}
			logger.Info("rescore finished",
				zap.Int("examined", res.Examined),
				zap.Int("changed", res.Changed),
				zap.Bool("dry_run", rescoreDryRun))
			printRescore(cmd, res)
			return nil
		})
	},
}

func init() {
	rescoreCmd.Flags().BoolVar(&rescoreDryRun, "dry-run", false, "Report changes without writing them")
}

func printRescore(cmd *cobra.Command, res candidatestore.RescoreResult) {
	out := cmd.OutOrStdout()
	verb := "updated"
	if rescoreDryRun {
		verb = "would change"
	}
	c := color.New(color.FgGreen)
	if res.Changed > 0 {
		c = color.New(color.FgYellow)
	}
	c.Fprintf(out, "Examined %d candidates, %s %d\n", res.Examined, verb, res.Changed)
}
