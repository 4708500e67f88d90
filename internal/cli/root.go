package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/angple/internal/config"
	"github.com/existflow/angple/internal/logger"
)

var (
	configPath   string
	apiURL       string
	demoURL      string
	stateBackend string
	logLevel     string
	logFile      string
	logConsole   bool
	saveFlags    bool
)

// cfg is the effective configuration, set before any command runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "angple",
	Short: "Angple - community board client",
	Long: `Angple reads the Damoang community board from the terminal.

It talks to the community API (or generated mock data when mock mode is
on), keeps the API token between runs, and drives the demo backend.

Run 'angple' without arguments to launch the interactive browser.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		if cmd.Flags().Changed("api-url") {
			cfg.APIBaseURL = apiURL
		}
		if cmd.Flags().Changed("demo-url") {
			cfg.DemoURL = demoURL
		}
		if cmd.Flags().Changed("state-backend") {
			cfg.StateBackend = stateBackend
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		if saveFlags {
			if err := saveConfig(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Angple started", logger.F("command", cmd.CommandPath()))
		return nil
	},
	RunE: runBrowse,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Angple exiting", logger.F("command", cmd.CommandPath()))
		_ = logger.Close()
	},
}

func saveConfig() error {
	if configPath != "" {
		return cfg.SaveTo(configPath)
	}
	return cfg.Save()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default ~/.angple/config.yaml)")
	flags.StringVar(&apiURL, "api-url", "", "Community API root")
	flags.StringVar(&demoURL, "demo-url", "", "Demo backend root")
	flags.StringVar(&stateBackend, "state-backend", "", "Where to keep the token and settings (sqlite, redis, memory)")
	flags.StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	flags.StringVar(&logFile, "log-file", "", "Path to log file")
	flags.BoolVar(&logConsole, "log-console", false, "Enable console logging")
	flags.BoolVar(&saveFlags, "save", false, "Write the flag overrides to the config file")

	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(menusCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(demoCmd)
}
