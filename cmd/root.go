package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/screenwise/screenwise/internal/insights"
	"github.com/screenwise/screenwise/internal/store"
	"github.com/screenwise/screenwise/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "screenwise",
	Short: "Track and explore personal screen time from the terminal",
	Long: `screenwise records per-day screen time (optionally per app) in a local
SQLite database and turns it into weekly/monthly/yearly charts, insight
summaries, and activity streaks.

Running without a subcommand opens the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		app := tui.NewApp(s)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

// Execute runs the CLI and exits non-zero on any error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("db", "", "path to the SQLite database")
	viper.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
}

// initConfig wires the optional config file and SCREENWISE_* environment
// variables. Flags win over both.
func initConfig() {
	if cfgDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(cfgDir, "screenwise"))
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("SCREENWISE")
	viper.AutomaticEnv()
	viper.SetDefault("heatmap_window", insights.DefaultHeatmapWindow)

	// The config file is optional.
	_ = viper.ReadInConfig()
}

func openStore() (*store.Store, error) {
	path := viper.GetString("db_path")
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.New(path)
}
