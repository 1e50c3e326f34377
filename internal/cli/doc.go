// Package cli loads the launcher configuration from the environment and an
// optional config file, and turns run outcomes into process exit statuses.
package cli
