package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"nano-kontrol/config"
	"nano-kontrol/daw/sim"
	"nano-kontrol/midi"
	"nano-kontrol/script"
	"nano-kontrol/theme"
	"nano-kontrol/tui"
)

var virtual bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the mapping against the simulated DAW with a live monitor",
	RunE:  runMapping,
}

func init() {
	runCmd.Flags().BoolVar(&virtual, "virtual", false,
		"drive the mapping from the keyboard instead of a controller")
}

func loadTheme(cfg *config.Config) (*theme.Theme, error) {
	var palette *theme.Palette
	if cfg.UI.Palette != "" {
		p, err := theme.LoadGPL(cfg.UI.Palette)
		if err != nil {
			return nil, err
		}
		palette = p
	}
	return theme.New(palette).WithLEDColors(cfg.UI.LEDOn, cfg.UI.LEDOff)
}

func runMapping(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	th, err := loadTheme(cfg)
	if err != nil {
		return err
	}

	host := sim.New()
	host.LoadProject(cfg.Project)

	output := &midi.Output{}
	session := script.New(host, output, script.Options{
		TrackChannel:     cfg.Device.TrackChannel,
		TransportChannel: cfg.Device.TransportChannel,
		FlashDelay:       cfg.Timing.FlashDelay,
		SettleDelay:      cfg.Timing.SettleDelay,
	})
	runner := script.NewRunner(session, cfg.Timing.RefreshRate)
	host.OnChange(runner.MarkDirty)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go runner.Run(ctx)
	runner.ProjectLoaded()

	m := tui.NewModel(runner, host, cfg.Project, th)
	m.Output = output

	if virtual {
		v := midi.NewVirtual("virtual")
		defer v.Close()
		output.Attach(v)
		m.Virtual = v
		go tui.Pump(v, runner)
	} else {
		deviceMgr := midi.NewDeviceManager(cfg.Device.PortPattern)
		go deviceMgr.Run(ctx)
		m.DeviceMgr = deviceMgr

		fmt.Println("nano-kontrol")
		fmt.Println("Connect the nanoKONTROL2 any time - it will be detected automatically")
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
