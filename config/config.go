package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"

	"go-legendary-launch/constants"
	"go-legendary-launch/types"
)

// ConfigManager handles loading/saving
type ConfigManager struct {
	Config     *types.AppConfig
	ConfigPath string
	Mu         sync.RWMutex // Thread-safety for UI reads/writes
}

// NewConfigManager initializes the manager and determines the file path
func NewConfigManager() *ConfigManager {
	configPath := filepath.Join(xdg.ConfigHome, constants.AppDir, constants.ConfigFile)
	return &ConfigManager{
		ConfigPath: configPath,
		Config:     &types.AppConfig{},
	}
}

// Load reads the config from disk
func (cm *ConfigManager) Load() error {
	cm.Mu.Lock()
	defer cm.Mu.Unlock()

	if _, err := os.Stat(cm.ConfigPath); os.IsNotExist(err) {
		return cm.createDefault()
	}

	data, err := os.ReadFile(cm.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cm.Config); err != nil {
		return fmt.Errorf("failed to parse config json: %w", err)
	}

	cm.applyDefaults()
	return nil
}

// GetConfig returns a copy of the current config (Thread-Safe)
func (cm *ConfigManager) GetConfig() types.AppConfig {
	cm.Mu.RLock()
	defer cm.Mu.RUnlock()
	return *cm.Config
}

// Save writes the given config to disk
func (cm *ConfigManager) Save(newConfig types.AppConfig) error {
	cm.Mu.Lock()
	defer cm.Mu.Unlock()

	*cm.Config = newConfig
	cm.applyDefaults()

	dir := filepath.Dir(cm.ConfigPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.Config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cm.ConfigPath, data, 0o644)
}

// DefaultLegendaryRoot returns where the legendary CLI keeps its state
// when nothing overrides it.
func DefaultLegendaryRoot() string {
	return filepath.Join(xdg.ConfigHome, "legendary")
}

// applyDefaults fills blank fields. Callers must hold the write lock.
func (cm *ConfigManager) applyDefaults() {
	if cm.Config.LegendaryRoot == "" {
		cm.Config.LegendaryRoot = DefaultLegendaryRoot()
	}
	if cm.Config.LegendaryBinary == "" {
		cm.Config.LegendaryBinary = constants.DefaultBinary
	}
}

// createDefault generates a config file if none exists
func (cm *ConfigManager) createDefault() error {
	cm.Config = &types.AppConfig{
		LegendaryRoot:   DefaultLegendaryRoot(),
		LegendaryBinary: constants.DefaultBinary,
	}

	log.Info().Str("path", cm.ConfigPath).Msg("config file not found, creating default")

	dir := filepath.Dir(cm.ConfigPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.Config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cm.ConfigPath, data, 0o644)
}
