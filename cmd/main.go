package main

import (
	"flag"
	"fmt"
	"os"
	"scriptmem/internal/logger"
	"scriptmem/internal/probe"
	"scriptmem/pkg/color"

	"github.com/charmbracelet/log"
)

// Main entry point for the memory core probe.
func main() {
	options := probe.Probe{}

	flag.BoolVar(&options.Help, "h", false, "Show help")
	flag.BoolVar(&options.Verbose, "v", false, "Verbose mode (debug logs and overflow trace)")
	flag.BoolVar(&options.NoColor, "n", false, "No color")
	flag.StringVar(&options.ConfigFile, "c", "", "Path to a scriptmem.toml file")
	flag.IntVar(&options.DepthLimit, "d", 0, "Override the call depth limit")

	flag.Parse()

	if options.Help {
		fmt.Printf("Usage: %s [options]\n", os.Args[0])
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	cfg, err := options.Config()
	if err != nil {
		logger.Init(options.Verbose, options.NoColor)
		log.Fatal("Invalid configuration", "error", err)
	}

	logger.Init(cfg.Log.Debug, cfg.Log.NoColor)
	if cfg.Log.NoColor {
		color.EnableColor(false)
	}

	if err := options.Run(); err != nil {
		log.Fatal("Probe failed", "error", err)
	}
}
