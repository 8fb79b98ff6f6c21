package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/northcutted/scanboard/pkg/config"
	"github.com/northcutted/scanboard/pkg/loader"
)

var (
	configFile   string
	verbose      bool
	semgrepSrc   string
	trivyFSSrc   string
	trivyImgSrc  string
	dismissFile  string
	noColor      bool
	outputFile   string
	dryRun       bool
	outputFormat string
)

// stdout is where commands print. Tests swap it.
var stdout io.Writer = os.Stdout

// settings holds the resolved configuration of the running command.
var settings resolvedSettings

type resolvedSettings struct {
	Sources    loader.Sources
	Dismissals string
	Format     string
	Output     string
	PageSize   int
	Depth      int
	NoColor    bool
}

var rootCmd = &cobra.Command{
	Use:   "scanboard",
	Short: "Triage Semgrep and Trivy findings from the terminal",
	Long: `Load Semgrep (SAST) and Trivy (SCA) JSON reports and triage them.

scanboard normalizes both report types into one finding model, then lets you
filter, sort, page, group, dismiss, and export the findings.

Sources are read from local files or http(s) URLs. A source that cannot be
read is treated as an empty report.

Configuration precedence: flags > SCANBOARD_* environment > scanboard.yaml > defaults.`,
	Example: `  # Show the board with default report paths (data/*.json)
  scanboard view

  # Only high findings in the src/api module
  scanboard view --category sast --severity high --module src/api

  # Render an HTML report
  scanboard view --format html -o findings.html

  # Export the filtered dependency findings as CSV
  scanboard export --category sca-fs --format csv`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verbose)
		return initSettings(cmd)
	},
}

// Execute runs the root cobra command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Path to config file (default: scanboard.yaml if present)")
	pf.BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	pf.StringVar(&semgrepSrc, "semgrep", loader.DefaultSemgrep, "Semgrep JSON report (path or URL)")
	pf.StringVar(&trivyFSSrc, "trivy-fs", loader.DefaultTrivyFS, "Trivy filesystem JSON report (path or URL)")
	pf.StringVar(&trivyImgSrc, "trivy-image", loader.DefaultTrivyImage, "Trivy image JSON report (path or URL)")
	pf.StringVar(&dismissFile, "dismissals", "", "Dismissal file (default: .scanboard/dismissed.json)")
	pf.BoolVar(&noColor, "no-color", false, "Disable coloured output")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("scanboard {{.Version}}\n")
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// settingKeys maps viper keys to flag names. Keys double as environment
// variable suffixes, e.g. SCANBOARD_TRIVY_FS.
var settingKeys = []string{
	"semgrep", "trivy-fs", "trivy-image", "dismissals", "no-color",
	"format", "output", "page-size", "depth",
}

// initSettings resolves every setting with the precedence
// flag > environment > config file > built-in default.
func initSettings(cmd *cobra.Command) error {
	cfg, err := loadConfigFile()
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("SCANBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("semgrep", cfg.Sources.Semgrep)
	v.SetDefault("trivy-fs", cfg.Sources.TrivyFS)
	v.SetDefault("trivy-image", cfg.Sources.TrivyImage)
	v.SetDefault("dismissals", cfg.Dismissals)
	v.SetDefault("no-color", cfg.NoColor)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("page-size", cfg.PageSize)
	v.SetDefault("depth", cfg.Depth)

	for _, key := range settingKeys {
		if f := cmd.Flags().Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", key, err)
			}
		}
	}

	settings = resolvedSettings{
		Sources: loader.Sources{
			Semgrep:    v.GetString("semgrep"),
			TrivyFS:    v.GetString("trivy-fs"),
			TrivyImage: v.GetString("trivy-image"),
		}.WithDefaults(),
		Dismissals: v.GetString("dismissals"),
		Format:     v.GetString("format"),
		Output:     v.GetString("output"),
		PageSize:   v.GetInt("page-size"),
		Depth:      v.GetInt("depth"),
		NoColor:    v.GetBool("no-color"),
	}
	if settings.Dismissals == "" {
		settings.Dismissals = cfg.Dismissals
	}
	slog.Debug("settings resolved",
		"semgrep", settings.Sources.Semgrep,
		"trivy-fs", settings.Sources.TrivyFS,
		"trivy-image", settings.Sources.TrivyImage,
		"dismissals", settings.Dismissals)
	return nil
}

// loadConfigFile reads --config, or scanboard.yaml when it exists.
func loadConfigFile() (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded config", "path", configFile)
		return cfg, nil
	}
	return config.LoadOptional(config.DefaultFile)
}
