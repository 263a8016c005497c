package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pickgrip/internal/config"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath, format string
	flag.StringVar(&configPath, "config", "", "Form definition to load (TOML)")
	flag.StringVar(&configPath, "c", "", "Form definition to load (shorthand)")
	flag.StringVar(&format, "format", "lines", "Output format: lines or query")
	flag.Parse()

	if configPath == "" && flag.NArg() > 0 {
		configPath = flag.Arg(0)
	}
	if format != "lines" && format != "query" {
		fmt.Fprintf(os.Stderr, "Unknown format %q, expected lines or query\n", format)
		os.Exit(2)
	}

	// Set up logging
	logFile, err := os.OpenFile("pickgrip.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, savePath := loadConfig(configSvc, configPath)

	// Write the submitted selection back when the form asks for it
	bus.Subscribe(eventbus.EventFormSubmitted, func(e eventbus.DomainEvent) {
		if !cfg.UISettings.RememberSelection {
			return
		}
		if err := configSvc.SaveToPath(cfg, savePath); err != nil {
			log.Printf("Failed to save config: %v", err)
		} else {
			log.Printf("Config saved to %s", savePath)
		}
	})

	log.Printf("Creating UI model...")
	model := ui.NewModel(bus, cfg)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UISettings.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(model, opts...)
	model.SetProgram(p)

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	values, ok := model.Result()
	out := formatResult(model, values, format)
	model.Close()

	if !ok {
		os.Exit(1)
	}
	if out != "" {
		fmt.Println(out)
	}
}

// loadConfig loads the form from path, or from the default location when
// path is empty. A form that cannot be read falls back to the demo form.
func loadConfig(configSvc config.ConfigService, path string) (*config.Config, string) {
	if path == "" {
		cfg, err := configSvc.Load()
		if err != nil {
			log.Printf("Failed to load config from %s: %v", configSvc.Path(), err)
			return config.DefaultConfig(), configSvc.Path()
		}
		return cfg, configSvc.Path()
	}

	cfg, err := configSvc.LoadFromPath(path)
	if err != nil {
		log.Printf("Failed to load config from %s: %v", path, err)
		fmt.Fprintf(os.Stderr, "Could not load %s: %v\n", path, err)
		os.Exit(1)
	}
	log.Printf("Loaded config from %s", path)
	return cfg, path
}

// formatResult renders the submitted values in field order
func formatResult(model *ui.Model, values map[string][]string, format string) string {
	var parts []string
	for _, f := range model.Fields() {
		v, ok := values[f.Name()]
		if !ok {
			continue
		}
		switch format {
		case "query":
			if enc := f.Native().Encode(f.Name()); enc != "" {
				parts = append(parts, enc)
			}
		default:
			for _, s := range v {
				parts = append(parts, f.Name()+"="+s)
			}
		}
	}
	if format == "query" {
		return strings.Join(parts, "&")
	}
	return strings.Join(parts, "\n")
}
