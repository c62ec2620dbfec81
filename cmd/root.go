package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocolly/colly/v2"
	"github.com/openswoop/cgpa/pkg/app"
	"github.com/openswoop/cgpa/pkg/config"
	"github.com/openswoop/cgpa/pkg/database"
	"github.com/openswoop/cgpa/pkg/logger"
	"github.com/openswoop/cgpa/pkg/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var c *colly.Collector

var cacheDir = "cgpa/web-cache"
var noCache bool
var cfgFile string

// Set up by the root command before any subcommand runs
var (
	conf    config.Config
	log     *zap.Logger
	db      database.Database
	tracker *app.Tracker
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cgpa",
	Short: "A tool for tracking semester GPA and cumulative CGPA",
	Long: `Keeps a list of semesters and their subjects (credits plus a letter
grade or marks) and computes the credit-weighted GPA of every semester
and the CGPA across all of them. Data is saved in a local SQLite file
and can be exported as JSON, CSV or an SVG trend chart.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	teardown()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initColly)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("data", config.DefaultDataFile(), "SQLite file holding the session")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Write JSON logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Bypass the web cache when importing from a URL (default: false)")
}

func initColly() {
	c = colly.NewCollector()
	if !noCache {
		userCacheDir, _ := os.UserCacheDir()
		c.CacheDir = filepath.Join(userCacheDir, cacheDir)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	conf = cfg

	log, err = logger.New(conf.Log.Level, conf.Log.File)
	if err != nil {
		return err
	}

	sqlite, err := database.NewSqlite(conf.DataFile)
	if err != nil {
		log.Warn("Unable to open database, changes will not be saved", zap.String("file", conf.DataFile), zap.Error(err))
		db = database.NewMemory()
	} else {
		db = sqlite
	}

	tracker, _ = app.NewTracker(db, log)
	return nil
}

func teardown() {
	if db != nil {
		_ = db.Close()
		db = nil
	}
	if log != nil {
		_ = log.Sync()
	}
}

func printSummary(cmd *cobra.Command, summary report.Summary) error {
	return report.WriteTable(cmd.OutOrStdout(), summary)
}

// confirm asks a yes/no question on the command's input; anything but an
// explicit yes is a no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
	return false
}
