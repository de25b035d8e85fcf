package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stared/fourious/internal/config"
	"github.com/stared/fourious/internal/source"
)

// Options is the resolved command line: the effective config plus the
// chosen input.
type Options struct {
	Config config.Config

	// Path is the audio file to play, empty when another input is chosen.
	Path string
	// Mic selects microphone capture.
	Mic bool
	// DeviceID selects the capture device; -1 means the system default.
	DeviceID int
	// ListDevices prints capture devices and exits instead of running the TUI.
	ListDevices bool
}

// ParseArgs parses os.Args into Options. With no file argument and no
// --mic flag the simulated signal source is used.
func ParseArgs() (*Options, error) {
	opts := &Options{DeviceID: source.DefaultDeviceID}

	var configPath string
	var mode string
	var logScale, showPeaks bool

	rootCmd := &cobra.Command{
		Use:           "fourious [audio-file]",
		Short:         "Real-time audio spectrum visualizer for the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if opts.Mic {
					return fmt.Errorf("cannot combine an audio file with --mic")
				}
				opts.Path = args[0]
			}
			return nil
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	devicesCmd := &cobra.Command{
		Use:   "devices",
		Short: "List available capture devices",
		Run: func(cmd *cobra.Command, args []string) {
			opts.ListDevices = true
		},
	}
	rootCmd.AddCommand(devicesCmd)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to a YAML config file (default ~/.config/fourious/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&mode, "mode", "m", "",
		"Initial visualization mode: bars, line or spectrogram")
	rootCmd.PersistentFlags().BoolVarP(&logScale, "log-scale", "l", false,
		"Start with logarithmic magnitude scaling")
	rootCmd.PersistentFlags().BoolVarP(&showPeaks, "peaks", "p", false,
		"Start with peak markers visible")
	rootCmd.PersistentFlags().BoolVar(&opts.Mic, "mic", false,
		"Visualize microphone input instead of a file")
	rootCmd.PersistentFlags().IntVarP(&opts.DeviceID, "device", "d", source.DefaultDeviceID,
		"Capture device ID. Use the 'devices' command to see available devices.")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		opts.Config = cfg
	} else {
		opts.Config = config.TryLoadDefault()
	}

	// Flags override the config file, but only when set.
	if mode != "" {
		opts.Config.Mode = mode
	}
	if rootCmd.PersistentFlags().Changed("log-scale") {
		opts.Config.LogScale = logScale
	}
	if rootCmd.PersistentFlags().Changed("peaks") {
		opts.Config.ShowPeaks = showPeaks
	}

	return opts, nil
}
