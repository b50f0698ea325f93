package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/catalog"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/spf13/cobra"
)

func analyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [input-file]",
		Short: "Run the full plan: cash flow, goals, allocation and suggestions",
		Long: `Run every model over a profile and print the plan.

Examples:
  finplan analyze profile.yaml
  finplan analyze profile.yaml --format json
  finplan analyze profile.yaml --query '$.goal_analysis[?(@.feasible==false)].name'
  finplan analyze profile.yaml --format html --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(args[0])
			if err != nil {
				return err
			}
			summary, err := a.engine(cfg).Analyze(&cfg.Profile)
			if err != nil {
				return err
			}

			if query, _ := cmd.Flags().GetString("query"); query != "" {
				data, err := output.QueryJSON(summary, query)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			format, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(format, a.currency(cmd, cfg))
			if f == nil {
				return fmt.Errorf("unsupported format %q (available: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "))
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				filename, err := output.WriteFormatted(f, summary, f.Name())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(summary)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringP("query", "q", "", "JSONPath expression evaluated against the json output")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func projectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [input-file]",
		Short: "Project goals to their horizon and recommend corrections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(args[0])
			if err != nil {
				return err
			}
			engine := a.engine(cfg)
			goals := cfg.Profile.Goals
			if name, _ := cmd.Flags().GetString("goal"); name != "" {
				idx := cfg.Profile.FindGoal(name)
				if idx < 0 {
					return fmt.Errorf("goal %q not found in profile", name)
				}
				goals = goals[idx : idx+1]
			}

			projections := make([]domain.GoalProjection, 0, len(goals))
			for _, g := range goals {
				projections = append(projections, engine.Project(g))
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd, projections)
			}

			cur := a.currency(cmd, cfg)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "GOAL PROJECTIONS")
			fmt.Fprintln(out, strings.Repeat("=", 50))
			for _, gp := range projections {
				fmt.Fprintf(out, "%s\n", gp.Name)
				fmt.Fprintf(out, "  Target:          %s in %d months\n", output.FormatCurrency(gp.Target, cur), gp.HorizonMonths)
				fmt.Fprintf(out, "  Expected Return: %s\n", output.FormatPercentage(gp.ExpectedReturnAnnual))
				fmt.Fprintf(out, "  Projected Value: %s\n", output.FormatCurrency(gp.ProjectedValue, cur))
				if gp.Feasible {
					fmt.Fprintln(out, "  Status:          on track")
				} else {
					fmt.Fprintln(out, "  Status:          short")
					fmt.Fprintf(out, "  Suggested SIP:   %s\n", output.FormatCurrency(gp.Recommendation.SuggestedContribution, cur))
					if ext := gp.Recommendation.ExtendByMonths; ext != nil {
						fmt.Fprintf(out, "  Or Extend By:    %d months\n", *ext)
					} else {
						fmt.Fprintln(out, "  Or Extend By:    not reachable within the search window")
					}
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
	cmd.Flags().StringP("goal", "g", "", "Project only the named goal")
	cmd.Flags().Bool("json", false, "Print JSON")
	return cmd
}

func allocateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate [input-file]",
		Short: "Recommend an equity/bonds/commodities split",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(args[0])
			if err != nil {
				return err
			}
			engine := a.engine(cfg)
			cashflow := engine.Summarize(&cfg.Profile)
			alloc := engine.Allocate(&cfg.Profile, cashflow)
			if alloc.Commodities.IsNegative() {
				a.logger.Warnf("commodities allocation is negative (%s)", alloc.Commodities)
			}

			withInstruments, _ := cmd.Flags().GetBool("instruments")
			var candidates []catalog.Candidate
			if withInstruments {
				termFlag, _ := cmd.Flags().GetString("term")
				term, err := catalog.ParseTerm(termFlag)
				if err != nil {
					return err
				}
				candidates = catalog.Builtin().Candidates(alloc, term)
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd, struct {
					Allocation domain.AllocationResult `json:"recommended_allocation"`
					Candidates []catalog.Candidate     `json:"candidates,omitempty"`
				}{alloc, candidates})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "RECOMMENDED ALLOCATION")
			fmt.Fprintf(out, "  Equity:      %s%%\n", alloc.Equity)
			fmt.Fprintf(out, "  Bonds:       %s%%\n", alloc.Bonds)
			fmt.Fprintf(out, "  Commodities: %s%%\n", alloc.Commodities)
			for _, c := range candidates {
				fmt.Fprintf(out, "\n%s (%s%%)\n", strings.ToUpper(string(c.AssetClass)), c.Weight)
				for _, inst := range c.Instruments {
					fmt.Fprintf(out, "  - %s [%s, risk %s]\n", inst.Name, inst.SubCategory, inst.RiskLevel)
				}
			}
			return nil
		},
	}
	cmd.Flags().Bool("instruments", false, "List candidate instruments for each asset class")
	cmd.Flags().String("term", string(catalog.LongTerm), "Investment term for instrument matching: short, mid or long")
	cmd.Flags().Bool("json", false, "Print JSON")
	return cmd
}

func suggestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest [input-file]",
		Short: "List protection and savings gaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(args[0])
			if err != nil {
				return err
			}
			suggestions := a.engine(cfg).Suggest(&cfg.Profile)
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd, suggestions)
			}
			out := cmd.OutOrStdout()
			if len(suggestions) == 0 {
				fmt.Fprintln(out, "No gaps found")
				return nil
			}
			for i, s := range suggestions {
				fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, s.Title, s.Rationale)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print JSON")
	return cmd
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.loadConfig(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			return nil
		},
	}
}
