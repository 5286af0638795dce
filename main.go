package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"locator/internal/backend"
	"locator/internal/config"
	"locator/internal/deeplink"
	"locator/internal/eventbus"
	"locator/internal/geolocation"
	"locator/internal/ui"
	"locator/internal/ui/services/initial"
)

// geolocateTimeout bounds a single position lookup
const geolocateTimeout = 5 * time.Second

func main() {
	// Parse command line arguments
	var configPath, link string
	var writeConfig bool
	flag.StringVar(&configPath, "config", "", "Path to a config file (default: user config dir)")
	flag.StringVar(&configPath, "c", "", "Path to a config file (shorthand)")
	flag.StringVar(&link, "link", "", "Deep link or query string to open, e.g. 'q=coffee&near=35.68,139.76,2000'")
	flag.BoolVar(&writeConfig, "write-config", false, "Write the effective config and exit")
	flag.Parse()

	// A bare argument is treated as the link
	if link == "" && flag.NArg() > 0 {
		link = flag.Arg(0)
	}

	// Local overrides for LOCATOR_* variables; a missing file is fine
	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error reading .env.local: %v\n", err)
	}

	// Set up logging
	logFile, err := os.OpenFile("locator.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := loadConfig(configSvc, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if writeConfig {
		if configPath != "" {
			err = configSvc.SaveToPath(cfg, configPath)
		} else {
			err = configSvc.Save(cfg)
		}
		if err != nil {
			fmt.Printf("Error writing config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize the search backend
	client, cleanup, err := backend.Build(cfg)
	if err != nil {
		fmt.Printf("Error starting backend: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	queryWorker := backend.NewWorker(bus, client, cfg.Backend.QueryTimeout)
	defer queryWorker.Close()
	locateWorker := geolocation.NewWorker(bus, geolocation.NewStaticLocator(cfg.Geolocation), geolocateTimeout)
	defer locateWorker.Close()

	var source initial.Source
	if link != "" {
		source = deeplink.Source{Raw: link}
	}

	// Create UI model
	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(bus, cfg, source)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Forward worker results into the UI loop
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventQueryCompleted, forward)
	bus.Subscribe(eventbus.EventQueryFailed, forward)
	bus.Subscribe(eventbus.EventLocateCompleted, forward)
	bus.Subscribe(eventbus.EventError, forward)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// loadConfig loads the config from path, or from the user config dir when path is empty
func loadConfig(configSvc config.ConfigService, path string) (*config.Config, error) {
	if path == "" {
		return configSvc.Load()
	}
	cfg, err := configSvc.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded config from %s", path)
	return cfg, nil
}
