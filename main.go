package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stared/fourious/cmd"
	"github.com/stared/fourious/internal/pipeline"
	"github.com/stared/fourious/internal/source"
	"github.com/stared/fourious/internal/ui"
)

func main() {
	opts, err := cmd.ParseArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if opts.ListDevices {
		devices, err := source.ListDevices()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, d := range devices {
			fmt.Println(d)
		}
		return
	}

	src, err := openSource(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pipe, err := pipeline.New(src, opts.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := pipe.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting pipeline: %v\n", err)
		os.Exit(1)
	}
	defer pipe.Stop()

	program := tea.NewProgram(ui.New(pipe, opts.Config), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openSource(opts *cmd.Options) (source.Source, error) {
	switch {
	case opts.Mic:
		return source.NewMic(opts.DeviceID, opts.Config.FFTSize)
	case opts.Path != "":
		info, err := os.Stat(opts.Path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", opts.Path)
		}
		return source.NewFile(opts.Path, opts.Config.FFTSize)
	default:
		return source.NewSim(opts.Config.BinCap), nil
	}
}
