package main

import (
	"fmt"
	"os"

	"github.com/tatianab/ball-quest/internal/config"
	"github.com/tatianab/ball-quest/internal/engine"
	"github.com/tatianab/ball-quest/internal/tui"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		fmt.Printf("Error creating engine: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(eng); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
