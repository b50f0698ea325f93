package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the state resolved once per invocation by the root pre-run hook
type app struct {
	settings *config.Settings
	logger   *logrus.Logger
	debug    bool
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "finplan",
		Short: "Household financial planning CLI",
		Long: `Projects savings goals, recommends an equity/bonds/commodities allocation
and flags protection gaps for a household profile.

Settings come from flags, FINPLAN_* environment variables or a .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("currency", config.DefaultCurrency, "ISO currency code used for display")
	pf.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringSlice("env-file", []string{".env"}, "Env files to load before reading settings")
	pf.Bool("debug", false, "Log every calculation step")

	root.AddCommand(
		analyzeCmd(a),
		projectCmd(a),
		allocateCmd(a),
		suggestCmd(a),
		validateCmd(a),
		simulateCmd(a),
		compareCmd(a),
		explainCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

// init loads env files, binds flags through viper and builds the logger
func (a *app) init(cmd *cobra.Command) error {
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	if err := config.LoadEnvFiles(envFiles...); err != nil {
		return err
	}

	v := config.NewViper()
	for key, flag := range map[string]string{
		"currency":  "currency",
		"log_level": "log-level",
		"addr":      "addr",
		"model":     "model",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	settings, err := config.LoadSettings(v)
	if err != nil {
		return err
	}
	a.settings = settings

	a.debug, _ = cmd.Flags().GetBool("debug")
	a.logger = logrus.New()
	a.logger.SetOutput(cmd.ErrOrStderr())
	a.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	a.logger.SetLevel(settings.Level())
	if a.debug {
		a.logger.SetLevel(logrus.DebugLevel)
	}
	return nil
}

// loadConfig parses and validates a profile file
func (a *app) loadConfig(path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debugf("loaded profile %s from %s", cfg.Profile.Name, path)
	return cfg, nil
}

// engine builds a planning engine from the file's assumptions
func (a *app) engine(cfg *domain.Configuration) *calculation.PlanningEngine {
	engine := calculation.NewPlanningEngineWithAssumptions(cfg.EffectiveAssumptions())
	engine.SetLogger(a.logger)
	engine.Debug = a.debug
	return engine
}

// currency prefers an explicit --currency, then the profile file, then env and defaults
func (a *app) currency(cmd *cobra.Command, cfg *domain.Configuration) string {
	if f := cmd.Flags().Lookup("currency"); f != nil && f.Changed {
		return a.settings.Currency
	}
	if cfg != nil && cfg.Currency != "" {
		return strings.ToUpper(cfg.Currency)
	}
	return a.settings.Currency
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
