package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pitchboard/pkg/config"
	"pitchboard/pkg/logger"
)

// @title           Pitchboard API
// @version         1.0
// @description     Startup pitch directory backed by a headless CMS, with error reporting and user feedback

// @BasePath  /

// @schemes   http https

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

type cli struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "pitchboard",
		Short:         "Startup pitch directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envErr := godotenv.Load()

			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			logger.Init(cfg.Env, cfg.LogLevel)
			if envErr != nil {
				log.Debug().Msg("no .env file found, using environment variables")
			}

			c.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Path to a YAML config file (default: $CONFIG_FILE)")

	root.AddCommand(newServeCmd(c))
	root.AddCommand(newStartupsCmd(c))

	return root
}
