// Package file holds the filesystem-backed config adapters: a TOML
// ConfigStore under the tuberag config directory and a PromptStore of
// user-editable prompt templates seeded from embedded defaults.
package file
