package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/finplan/internal/catalog"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/explain"
	"github.com/rgehrsitz/finplan/internal/output"
	"github.com/spf13/cobra"
)

// newExplainer is swapped in tests
var newExplainer = func(cmd *cobra.Command, apiKey, model string) (explain.Explainer, error) {
	return explain.NewGeminiExplainer(cmd.Context(), apiKey, model)
}

func explainCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [input-file]",
		Short: "Print the plan with model-written commentary",
		Long: `Analyze a profile, then ask a Gemini model to explain the result.
The key is read from FINPLAN_API_KEY, GEMINI_API_KEY or GOOGLE_API_KEY. Without a
key, or if the model call fails, the plan is printed without commentary.`,
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
			cur := a.currency(cmd, cfg)

			req := explain.Request{Summary: summary, Currency: cur}
			req.Question, _ = cmd.Flags().GetString("question")
			if fund, _ := cmd.Flags().GetString("fund"); fund != "" {
				inst, ok := catalog.Builtin().Lookup(fund)
				if !ok {
					return fmt.Errorf("fund %q is not in the catalog", fund)
				}
				req.Instrument = &inst
			}

			if showPrompt, _ := cmd.Flags().GetBool("prompt"); showPrompt {
				fmt.Fprintln(cmd.OutOrStdout(), explain.BuildPrompt(req))
				return nil
			}

			md := output.PlanMarkdown(summary, cur)
			commentary := explainOrWarn(cmd, a, req)
			if commentary != "" {
				md += "\n## Commentary\n\n" + commentary + "\n"
			}

			style, _ := cmd.Flags().GetString("style")
			if style == "" {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			rendered, err := output.RenderMarkdown(md, style, 0)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
	cmd.Flags().String("model", config.DefaultModel, "Gemini model name")
	cmd.Flags().String("question", "", "Question to ask about the plan")
	cmd.Flags().String("fund", "", "Catalog instrument to discuss")
	cmd.Flags().String("style", "dark", "glamour style (dark, light, notty); empty prints raw markdown")
	cmd.Flags().Bool("prompt", false, "Print the prompt instead of calling the model")
	return cmd
}

// explainOrWarn never fails the command: any explainer problem is logged and
// yields empty commentary
func explainOrWarn(cmd *cobra.Command, a *app, req explain.Request) string {
	e, err := newExplainer(cmd, a.settings.APIKey, a.settings.Model)
	if err != nil {
		if errors.Is(err, explain.ErrNoExplainer) {
			a.logger.Warn("no API key configured; printing the plan without commentary")
		} else {
			a.logger.WithError(err).Warn("explainer unavailable; printing the plan without commentary")
		}
		return ""
	}
	text, err := explain.Explain(cmd.Context(), e, req)
	if err != nil {
		a.logger.WithError(err).Warn("explanation failed; printing the plan without commentary")
		return ""
	}
	return strings.TrimSpace(text)
}
