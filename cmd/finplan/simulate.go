package main

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func simulateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [input-file]",
		Short: "Monte Carlo simulation of a goal's ending value",
		Long: `Simulate a goal with normally distributed monthly returns centred on the
tiered expected return, and report the chance of reaching the target.

Examples:
  finplan simulate profile.yaml --goal Retirement
  finplan simulate profile.yaml --goal Retirement --volatility 0.2 --simulations 5000 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(args[0])
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("goal")
			idx := cfg.Profile.FindGoal(name)
			if idx < 0 {
				return fmt.Errorf("goal %q not found in profile", name)
			}

			sims, _ := cmd.Flags().GetInt("simulations")
			seed, _ := cmd.Flags().GetUint64("seed")
			vol, _ := cmd.Flags().GetFloat64("volatility")
			workers, _ := cmd.Flags().GetInt("workers")
			simulator := calculation.NewGoalSimulator(a.engine(cfg), calculation.GoalSimulationConfig{
				NumSimulations:   sims,
				Seed:             seed,
				AnnualVolatility: decimal.NewFromFloat(vol),
				Workers:          workers,
			})

			result, err := simulator.Run(cmd.Context(), cfg.Profile.Goals[idx])
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd, result)
			}

			cur := a.currency(cmd, cfg)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "GOAL SIMULATION: %s\n", result.GoalName)
			fmt.Fprintln(out, "=========================================")
			fmt.Fprintf(out, "Simulations:          %d\n", result.NumSimulations)
			fmt.Fprintf(out, "Horizon:              %d months\n", result.HorizonMonths)
			fmt.Fprintf(out, "Target:               %s\n", output.FormatCurrency(result.Target, cur))
			fmt.Fprintf(out, "Expected Return:      %s\n", output.FormatPercentage(result.ExpectedReturnAnnual))
			fmt.Fprintf(out, "Annual Volatility:    %s\n", output.FormatPercentage(result.AnnualVolatility.Mul(decimal.NewFromInt(100))))
			fmt.Fprintf(out, "Deterministic Value:  %s\n", output.FormatCurrency(result.DeterministicValue, cur))
			fmt.Fprintf(out, "Mean Ending Value:    %s\n", output.FormatCurrency(result.MeanEndingValue, cur))
			fmt.Fprintf(out, "Success Rate:         %s\n", output.FormatPercentage(result.SuccessRate.Mul(decimal.NewFromInt(100))))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Ending Value Percentiles:")
			fmt.Fprintf(out, "  10th Percentile: %s\n", output.FormatCurrency(result.Percentiles.P10, cur))
			fmt.Fprintf(out, "  25th Percentile: %s\n", output.FormatCurrency(result.Percentiles.P25, cur))
			fmt.Fprintf(out, "  50th Percentile: %s\n", output.FormatCurrency(result.Percentiles.P50, cur))
			fmt.Fprintf(out, "  75th Percentile: %s\n", output.FormatCurrency(result.Percentiles.P75, cur))
			fmt.Fprintf(out, "  90th Percentile: %s\n", output.FormatCurrency(result.Percentiles.P90, cur))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Risk Assessment: %s\n", riskLevel(result.SuccessRate))
			return nil
		},
	}
	defaults := calculation.DefaultGoalSimulationConfig()
	cmd.Flags().StringP("goal", "g", "", "Goal to simulate (required)")
	cmd.Flags().IntP("simulations", "s", defaults.NumSimulations, "Number of simulated paths")
	cmd.Flags().Uint64("seed", defaults.Seed, "Random seed; equal seeds give equal results")
	cmd.Flags().Float64("volatility", defaults.AnnualVolatility.InexactFloat64(), "Annual return volatility as a decimal")
	cmd.Flags().Int("workers", 0, "Worker goroutines (0 uses GOMAXPROCS)")
	cmd.Flags().Bool("json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

func riskLevel(successRate decimal.Decimal) string {
	switch {
	case successRate.GreaterThanOrEqual(decimal.NewFromFloat(0.90)):
		return "LOW RISK - the goal is reached in at least 90% of paths"
	case successRate.GreaterThanOrEqual(decimal.NewFromFloat(0.75)):
		return "MODERATE RISK - consider a small SIP increase"
	case successRate.GreaterThanOrEqual(decimal.NewFromFloat(0.50)):
		return "HIGH RISK - raise the SIP or extend the horizon"
	default:
		return "VERY HIGH RISK - the goal is missed in most paths"
	}
}
