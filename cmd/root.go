package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grcdash/fbk/internal/client"
	"github.com/grcdash/fbk/internal/output"
	"github.com/grcdash/fbk/internal/state"
	"github.com/grcdash/fbk/internal/store"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui         *output.UI
	cacheStore store.Store
	apiClient  *client.Client
	feed       *state.Store

	verbose bool
	dryRun  bool

	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "fbk",
	Short: "Feedback manager for the GRC dashboard",
	Long: `fbk manages feedback for a governance/risk/compliance dashboard.
It lists, submits, votes on, and triages feedback against the dashboard's
feedback API, keeps offline snapshots in a local cache, and exposes the
same operations to AI tooling over MCP.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return listRun(cmd.Context())
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would happen without making changes")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/fbk/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "fbk")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FBK")
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault()
	home, _ := os.UserHomeDir()
	defaultConfigDir := filepath.Join(home, ".config", "fbk")

	viper.SetDefault("state_dir", defaultConfigDir)
	viper.SetDefault("db_path", filepath.Join(defaultConfigDir, "fbk.db"))
	viper.SetDefault("api_url", client.DefaultBaseURL)
	viper.SetDefault("api_timeout", client.DefaultTimeout.String())
	viper.SetDefault("page_size", 20)
	viper.SetDefault("cache.keep", 10)
	viper.SetDefault("anthropic.api_key", "")
	viper.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// The cache store is opened lazily by getStore, so purely remote
	// commands run without touching the local db.
}

// getClient returns the shared API client, building it on first call.
func getClient() *client.Client {
	if apiClient != nil {
		return apiClient
	}
	apiClient = client.New(viper.GetString("api_url"),
		client.WithTimeout(viper.GetDuration("api_timeout")),
	)
	return apiClient
}

// getFeed returns the shared feedback state store.
func getFeed() *state.Store {
	if feed != nil {
		return feed
	}
	feed = state.New(getClient(), state.WithPageSize(viper.GetInt("page_size")))
	return feed
}

// getStore returns the local snapshot cache, initializing it on first call.
func getStore() (store.Store, error) {
	if cacheStore != nil {
		return cacheStore, nil
	}

	dbPath := viper.GetString("db_path")
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	if err := s.Migrate(rootCmd.Context()); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}

	cacheStore = s
	return cacheStore, nil
}
