package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"pickgrip/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int        `toml:"version"`
	Title      string     `toml:"title,omitempty"`
	Fields     []Field    `toml:"fields"`
	UISettings UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	RememberSelection bool `toml:"remember_selection"`
	Mouse             bool `toml:"mouse"`
	PanelHeight       int  `toml:"panel_height"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "pickgrip", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Path returns the default config file location
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the default location, falling back to
// the built-in form when no file exists yet
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cs.filePath, cfg)
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the default location
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cs.publishLoaded(path, cfg)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}
	return nil
}

func (cs *configService) publishLoaded(path string, cfg *Config) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, Fields: len(cfg.Fields)})
	}
}

// Parse decodes a TOML document and normalizes every field
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.UISettings.PanelHeight <= 0 {
		c.UISettings.PanelHeight = DefaultPanelHeight
	}
	seen := make(map[string]bool)
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Name == "" || seen[f.Name] {
			name := fmt.Sprintf("field%d", i+1)
			log.Printf("config: field %d has missing or duplicate name %q, using %q", i, f.Name, name)
			f.Name = name
		}
		seen[f.Name] = true
		*f = f.Normalized()
	}
}

// Field returns the field with the given name
func (c *Config) Field(name string) (*Field, bool) {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// DefaultPanelHeight is the number of option rows shown at once
const DefaultPanelHeight = 8

// DefaultConfig returns the default configuration, a small demo form
func DefaultConfig() *Config {
	cfg := &Config{
		Version: 1,
		Title:   "pickgrip",
		Fields: []Field{
			{
				Name:        "fruit",
				Label:       "Fruit",
				Placeholder: "Pick a fruit",
				Search:      true,
				Data:        []any{"Apple", "Banana", "Cherry", "Dragonfruit", "Elderberry"},
			},
			{
				Name:  "size",
				Label: "Size",
				Data: []any{
					map[string]any{"text": "Small", "value": "s"},
					map[string]any{"text": "Medium", "value": "m"},
					map[string]any{"text": "Large", "value": "l"},
				},
			},
			{
				Name:         "toppings",
				Label:        "Toppings",
				Placeholder:  "Add toppings",
				Multiple:     true,
				MultipleTags: true,
				Search:       true,
				Data: []any{
					map[string]any{"header": "Sweet", "data": []any{"Honey", "Chocolate", "Caramel"}},
					map[string]any{"header": "Crunchy", "data": []any{"Granola", "Almonds", map[string]any{"text": "Peanuts", "value": "peanuts", "disabled": true}}},
				},
			},
		},
		UISettings: UISettings{
			RememberSelection: false,
			Mouse:             true,
			PanelHeight:       DefaultPanelHeight,
		},
	}
	cfg.normalize()
	return cfg
}
