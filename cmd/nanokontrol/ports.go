package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nano-kontrol/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI ports and mark the ones matching the configured pattern",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Println("(waiting up to 3 seconds...)")
		ins, outs, err := midi.PortNames()
		if err == midi.ErrPortsTimeout {
			fmt.Println("TIMEOUT! CoreMIDI is hung.")
			fmt.Println("Fix: sudo killall coreaudiod midiserver")
			return err
		}
		if err != nil {
			return err
		}

		list := func(title string, names []string) {
			fmt.Printf("=== MIDI %s Ports ===\n", title)
			for i, name := range names {
				mark := " "
				if midi.MatchesPattern(name, cfg.Device.PortPattern) {
					mark = "*"
				}
				fmt.Printf(" %s%d: %s\n", mark, i, name)
			}
		}
		list("Input", ins)
		fmt.Println()
		list("Output", outs)
		return nil
	},
}
