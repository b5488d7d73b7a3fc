package cli

import (
	"encoding/json"
	"fmt"

	"chaining-quiz-service/internal/infra/file"
	"chaining-quiz-service/internal/placement"
	"github.com/spf13/cobra"
)

// NewScoreCmd scores an answers file offline against a pool file.
func NewScoreCmd() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "score <pool-file> <answers-file>",
		Short: "Select a quiz set with a fixed seed and score answers against it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := file.ReadPool(args[0])
			if err != nil {
				return err
			}
			answers, err := file.ReadAnswers(args[1])
			if err != nil {
				return err
			}

			set := placement.SelectQuizSet(pool, placement.NewRand(seed))
			out := struct {
				Items    []string `json:"items"`
				MaxScore int      `json:"maxScore"`
				Result   any      `json:"result"`
			}{MaxScore: set.MaxScore(), Result: placement.ComputeScore(set, answers)}
			for _, item := range set {
				out.Items = append(out.Items, item.ID)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for quiz set selection")
	return cmd
}
