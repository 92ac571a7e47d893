package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fixengine/internal/config"
	"fixengine/internal/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fixengine",
	Short: "FIX 4.2 order-management simulator",
	Long: `fixengine simulates the order-management side of an electronic
trading venue over FIX 4.2/TCP: a session server that accepts connections,
completes the Logon handshake, and acknowledges NewOrderSingle requests, plus a
single-shot client and a concurrent benchmark driver for exercising it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initCLILogger(cmd)
	},
}

func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nfixengine crashed: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("fixengine")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// initCLILogger wires up logging before any subcommand runs, honoring
// --log-level (or FIXSIM_LOG_LEVEL when the flag is not given) so pterm's
// own debug chatter stays in sync with logrus.
func initCLILogger(cmd *cobra.Command) {
	flag := cmd.Flags().Lookup("log-level")
	level := "info"
	if flag != nil && flag.Changed {
		level = flag.Value.String()
	} else if env := os.Getenv("FIXSIM_LOG_LEVEL"); env != "" {
		level = env
	}

	switch level {
	case "debug":
		pterm.EnableDebugMessages()
	default:
		pterm.DisableDebugMessages()
	}

	logConfig := &config.LogConfig{
		Level:  level,
		Format: "text",
		Output: "stdout",
	}
	if _, err := logger.InitLogger(logConfig); err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
	}
}
