// Package config manages user-level settings stored at ~/.techpix/config.yaml.
// Values can also come from TECHPIX_* environment variables. Command-line
// flags take precedence over both.
package config
