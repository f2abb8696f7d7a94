// Package config loads environment-based configuration into typed structs
// using caarlos0/env tags, with optional .env file support for development.
// Parsed configurations are cached per type for the process lifetime.
package config
