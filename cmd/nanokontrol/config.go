package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nano-kontrol/config"
	"nano-kontrol/midi"
)

var writeConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if writeConfig {
			if opts.configPath != "" {
				err = cfg.SaveFile(opts.configPath)
			} else {
				err = cfg.Save()
			}
			if err != nil {
				return err
			}
		}

		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVarP(&writeConfig, "write", "w", false,
		"save the effective configuration")
}

// openController connects to the first port matching pattern
func openController(pattern string) (*midi.NanoKontrol2, error) {
	if pattern == "" {
		pattern = config.DefaultConfig().Device.PortPattern
	}
	return midi.Open(pattern)
}
