package main

import (
	"github.com/spf13/cobra"

	xlog "github.com/twitchylinux/twlconf/internal/log"
	"github.com/twitchylinux/twlconf/install"
)

func newNormalizeCmd() *cobra.Command {
	var configPath, outPath string
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite a configuration in its saved form",
		Long: `normalize loads a configuration document and writes it back without
scratch planning state, with every section present and swap_size only when
set. The output file is replaced atomically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := readConfig(configPath)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = configPath
			}
			s := install.NewSession(conf)
			if err := s.Snapshot(outPath); err != nil {
				return err
			}
			logger := xlog.WithComponent("cli")
			logger.Info().
				Str("event", "config.saved").
				Str("session", s.ID.String()).
				Str("path", outPath).
				Msg("wrote configuration")
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration document")
	cmd.Flags().StringVar(&outPath, "out", "", "Output path (defaults to rewriting --config in place)")
	cmd.MarkFlagRequired("config")
	return cmd
}

func init() {
	rootCmd.AddCommand(newNormalizeCmd())
}
