package utils

import (
	"github.com/BurntSushi/toml"
)

// LoadTOMLFile loads and parses a TOML file into the provided struct
func LoadTOMLFile(configPath string, config any) error {
	_, err := toml.DecodeFile(configPath, config)
	return err
}
