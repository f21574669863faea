package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"

	"winembed/config"
	"winembed/process"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "Path to the TOML config file")
	hostPIDFlag := flag.Int("host-pid", 0, "Process ID owning the host window (default: the window titled like this console)")
	hostTitleFlag := flag.String("host-title", "", "Part of the title of the host window, matched case-sensitively")
	showFlag := flag.Bool("show", true, "Show the embedded application's window when it starts")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] command [args...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logger.NewLogger(coloransi.Color(coloransi.Red, coloransi.ColorOrange, "winembed"))

	result, err := config.LoadFrom(*configFlag)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	for _, warning := range result.Warnings {
		log.Warn(result.Path, warning)
	}
	cfg := result.Config

	command := strings.Join(flag.Args(), " ")
	if command == "" {
		command = cfg.Launch.Command
	}
	if command == "" {
		fmt.Println("Error: a command is required, either as arguments or launch.command in the config")
		flag.Usage()
		os.Exit(1)
	}

	show := cfg.Launch.Show
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "show" {
			show = *showFlag
		}
	})

	hostPID := process.ProcessID(*hostPIDFlag)
	if hostPID == 0 {
		hostPID, err = findHost(*hostTitleFlag)
		if err != nil {
			fmt.Printf("Error finding host window: %v\n", err)
			os.Exit(1)
		}
	}

	engine, err := newEngine(hostPID, command, cfg)
	if err != nil {
		fmt.Printf("Error preparing embedding into pid %d: %v\n", hostPID, err)
		os.Exit(1)
	}

	if err := engine.Launch(show); err != nil {
		fmt.Printf("Error launching %q: %v\n", command, err)
		os.Exit(1)
	}
	log.Infoln("Embedded", command, "into pid", hostPID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for engine.IsRunning() {
		select {
		case <-ctx.Done():
			log.Infoln("Interrupted, stopping")
			if err := engine.Stop(true); err != nil {
				log.Warn("Stop:", err)
			}
			return
		case <-ticker.C:
		}
	}
}
