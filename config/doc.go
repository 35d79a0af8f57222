// Package config loads application configuration for services embedding
// the eventsource toolkit.
//
// Load merges, in increasing precedence: a YAML config file, a .env
// file, and process environment variables. Struct validation runs
// through go-playground/validator tags via ValidateStruct.
package config
