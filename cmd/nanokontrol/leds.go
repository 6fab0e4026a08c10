package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nano-kontrol/script"
)

var ledDelay time.Duration

var ledsCmd = &cobra.Command{
	Use:   "leds",
	Short: "Chase every button LED to check the controller scene",
	Long: `leds lights each transport and S/M/R button in turn on the configured
channels. A button that stays dark is not set to external LED mode or
sits on a different channel in the controller scene.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		nk, err := openController(cfg.Device.PortPattern)
		if err != nil {
			return err
		}
		defer nk.Close()
		fmt.Printf("Using %s\n", nk.ID())

		hw := script.NewHardware(nk, cfg.Device.TrackChannel, cfg.Device.TransportChannel)
		buttons := []uint8{
			script.PlayButton, script.StopButton, script.RewindButton,
			script.ForwardButton, script.RecordButton, script.ModeButton,
			script.PrevTrackButton, script.NextTrackButton,
			script.MarkerSetButton, script.MarkerPrevButton, script.MarkerNextButton,
		}
		for b := script.TracksFirstButton; b <= script.TracksLastButton; b++ {
			buttons = append(buttons, uint8(b))
		}

		for _, b := range buttons {
			hw.UpdateButtonLight(b, true)
			time.Sleep(ledDelay)
			hw.UpdateButtonLight(b, false)
		}

		fmt.Println("Flashing all S/M/R LEDs...")
		for i := 0; i < 2; i++ {
			hw.UpdateTrackButtons(true)
			time.Sleep(cfg.Timing.FlashDelay)
			hw.UpdateTrackButtons(false)
			time.Sleep(cfg.Timing.FlashDelay)
		}

		fmt.Println("Done!")
		return nil
	},
}

func init() {
	ledsCmd.Flags().DurationVar(&ledDelay, "delay", 150*time.Millisecond,
		"time each LED stays lit")
}
