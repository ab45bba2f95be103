// Package config loads and validates application configuration from
// environment variables (prefix REFDASH) and an optional YAML file, and
// resolves the file system paths used for uploads, generated reports,
// frontend assets, and logs.
package config
