// Package driving holds the primary ports: the interfaces through
// which the CLI, the HTTP API and the MCP server drive the core
// services. Implementations live in internal/core/services.
package driving
