package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/propcomply/compliance-engine/internal/calculation"
	"github.com/propcomply/compliance-engine/internal/config"
	"github.com/propcomply/compliance-engine/internal/regulatory"
	"github.com/propcomply/compliance-engine/pkg/dateutil"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the state resolved once per invocation by the root command
type app struct {
	configFile     string
	nowFlag        string
	format         string
	regulatoryFile string
	debug          bool

	settings *config.Settings
	engine   *calculation.ComplianceEngine
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "compliance",
		Short:         "Landlord compliance calculator",
		Long:          "Readiness scores, deadlines, MTD status, late payment penalties and EPC upgrade plans for UK landlords",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Settings file (yaml); COMPLIANCE_* environment variables override it")
	pf.StringVar(&a.nowFlag, "now", "", "Evaluate as of this instant (RFC3339 or YYYY-MM-DD) instead of the current time")
	pf.StringVarP(&a.format, "format", "f", "", "Output format for report (console, console-lite, csv, detailed-csv, html, json, all)")
	pf.StringVar(&a.regulatoryFile, "regulatory", "", "Regulatory tables file overriding the built-in tables")
	pf.BoolVar(&a.debug, "debug", false, "Enable debug logging to stderr")

	root.AddCommand(
		reportCmd(a),
		deadlinesCmd(a),
		scoreCmd(a),
		mtdCmd(a),
		penaltyCmd(a),
		epcCmd(a),
		exampleCmd(),
		validateCmd(),
		versionCmd(),
	)
	return root
}

// setup resolves settings, tables and the engine. Explicit flags win over the
// settings file, which wins over built-in defaults.
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.LoadSettings(a.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		settings.Format = a.format
	}
	if cmd.Flags().Changed("regulatory") {
		settings.RegulatoryFile = a.regulatoryFile
	}
	if cmd.Flags().Changed("debug") {
		settings.Debug = a.debug
	}
	a.settings = settings

	tables := regulatory.Default()
	if settings.RegulatoryFile != "" {
		tables, err = regulatory.LoadFile(settings.RegulatoryFile)
		if err != nil {
			return err
		}
	}

	engine := calculation.NewComplianceEngineWithTables(tables)
	if a.nowFlag != "" {
		now, err := dateutil.ParseInstant(a.nowFlag)
		if err != nil {
			return fmt.Errorf("--now: %w", err)
		}
		engine.SetClock(calculation.FixedClock(now))
	}
	if settings.Debug {
		engine.SetLogger(newSlogLogger(cmd.ErrOrStderr()))
		engine.Debug = true
	}
	a.engine = engine
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "compliance %s (commit %s, built %s, tables %s)\n",
				version, commit, date, regulatory.Default().Metadata.Version)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return "module " + bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// now reads the engine clock; commands call it once.
func (a *app) now() time.Time {
	return a.engine.Now()
}
