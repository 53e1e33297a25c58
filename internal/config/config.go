package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/bookmodal/internal/models"
)

// Dir is the per-project state directory.
const Dir = ".bookmodal"

const configFile = Dir + "/config.json"

// Path returns the config file location under baseDir
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk
func Load(baseDir string) (*models.Config, error) {
	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *models.Config) error {
	configPath := Path(baseDir)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// AddOption adds or relabels a catalog entry for a selection field
func AddOption(baseDir string, field models.Field, opt models.Option) error {
	if !field.IsSelection() {
		return fmt.Errorf("%s is not a selection field", field)
	}
	opt.ID = strings.TrimSpace(opt.ID)
	opt.Label = strings.TrimSpace(opt.Label)
	if opt.ID == "" {
		return fmt.Errorf("option id is required")
	}
	if opt.Label == "" {
		opt.Label = opt.ID
	}

	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}

	// Materialize defaults so adding one entry does not hide the rest
	cfg.Catalog = cfg.CatalogOrDefault()
	opts := cfg.Catalog.Options(field)
	replaced := false
	for i := range opts {
		if opts[i].ID == opt.ID {
			opts[i].Label = opt.Label
			replaced = true
		}
	}
	if !replaced {
		opts = append(opts, opt)
	}
	setOptions(&cfg.Catalog, field, opts)

	return Save(baseDir, cfg)
}

// RemoveOption deletes a catalog entry. Returns false if it was not present.
func RemoveOption(baseDir string, field models.Field, id string) (bool, error) {
	if !field.IsSelection() {
		return false, fmt.Errorf("%s is not a selection field", field)
	}

	cfg, err := Load(baseDir)
	if err != nil {
		return false, err
	}

	cfg.Catalog = cfg.CatalogOrDefault()
	opts := cfg.Catalog.Options(field)
	kept := make([]models.Option, 0, len(opts))
	for _, o := range opts {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	if len(kept) == len(opts) {
		return false, nil
	}
	setOptions(&cfg.Catalog, field, kept)

	return true, Save(baseDir, cfg)
}

func setOptions(c *models.Catalog, field models.Field, opts []models.Option) {
	switch field {
	case models.FieldTreatment:
		c.Treatments = opts
	case models.FieldTime:
		c.TimeSlots = opts
	}
}

// Update loads the config, applies fn and saves the result. Nothing is
// written when fn returns an error.
func Update(baseDir string, fn func(cfg *models.Config) error) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := fn(cfg); err != nil {
		return err
	}
	if err := Save(baseDir, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
