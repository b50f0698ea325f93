package main

import (
	"fmt"

	"github.com/rgehrsitz/finplan/internal/compare"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a profile against what-if variants",
		Long: `Compare a base profile against variants built from templates or transforms.

Examples:
  finplan compare profile.yaml --with play_safe,full_emergency_fund
  finplan compare profile.yaml --transform adjust_sip:goal=Home,amount=2000 --format csv
  finplan compare profile.yaml --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			listTemplates, _ := cmd.Flags().GetBool("list-templates")
			if len(args) == 0 {
				if listTemplates {
					fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(&domain.HouseholdProfile{})))
					return nil
				}
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}

			cfg, err := a.loadConfig(args[0])
			if err != nil {
				return err
			}
			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(&cfg.Profile)))
				return nil
			}

			withStr, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			templates := transform.ParseTemplateList(withStr)
			if len(templates) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required to build at least one variant")
			}

			compSet, err := compare.NewCompareEngine(a.engine(cfg)).Compare(cmd.Context(), &cfg.Profile, compare.CompareOptions{
				Templates:  templates,
				Transforms: transforms,
			})
			if err != nil {
				return err
			}
			compSet.ConfigPath = args[0]

			format, _ := cmd.Flags().GetString("format")
			var out string
			switch format {
			case "table":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				includePlans, _ := cmd.Flags().GetBool("include-plans")
				out, err = (&compare.JSONFormatter{Pretty: true, IncludePlans: includePlans}).Format(compSet)
				out += "\n"
			default:
				return fmt.Errorf("unsupported format %q (use table, compact, csv or json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("with", "", "Comma-separated template names")
	cmd.Flags().StringArray("transform", nil, "Transform spec name:key=value,... (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, compact, csv, json")
	cmd.Flags().Bool("include-plans", false, "Embed every variant's full plan in json output")
	cmd.Flags().Bool("list-templates", false, "List the available templates and exit")
	return cmd
}
