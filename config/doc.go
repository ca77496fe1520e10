// Package config loads service configuration from YAML files and the
// environment via viper, with .env support through godotenv. Service configs
// embed ServiceConfig and add their own sections.
package config
