package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"irrigation_dashboard/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	rootCmd    = &cobra.Command{
		Use:          "irrigation",
		Short:        "Irrigation demo dashboard",
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Configuration file (default configs/config.yml)")
	flags.String("port", "", "HTTP listen port")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	_ = viper.BindPFlag("port", flags.Lookup("port"))
	_ = viper.BindPFlag("log.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(liveCmd, simCmd, emulatorCmd)
}

// initConfig layers defaults, the config file, IRRIGATION_* env vars and flags.
func initConfig() {
	v := viper.GetViper()
	config.SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	}
}
