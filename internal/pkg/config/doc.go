// Package config loads and validates the CareLinkAI runtime configuration.
//
// Settings come from an optional .env file, a YAML file and CARELINK_*
// environment variables, in increasing order of precedence. Each section is a
// struct with mapstructure and validate tags plus a Validate method.
package config
