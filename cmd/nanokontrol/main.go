package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"nano-kontrol/config"
	"nano-kontrol/debug"
)

type options struct {
	configPath string
	debug      bool
	logPath    string
}

var opts options

var rootCmd = &cobra.Command{
	Use:   "nanokontrol",
	Short: "Korg nanoKONTROL2 mapping for a DAW",
	Long: `nanokontrol maps a Korg nanoKONTROL2 onto a DAW: track groups from
tagged track names on the S/M/R buttons and faders, transport LEDs,
and four-bar selections from the marker buttons.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file (default ~/.config/nano-kontrol/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false,
		"write a debug log")
	rootCmd.PersistentFlags().StringVar(&opts.logPath, "log", "",
		"debug log path (default ~/.config/nano-kontrol/debug.log)")

	rootCmd.AddCommand(runCmd, portsCmd, ledsCmd, configCmd)
}

// loadConfig reads the config and turns on logging when asked to
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.debug || cfg.Debug {
		path := opts.logPath
		if path == "" {
			path = cfg.LogPath
		}
		if err := debug.Enable(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer debug.Disable()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
