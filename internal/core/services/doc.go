// Package services carries the application logic behind the driving
// ports: ingestion, querying, settings and system reporting. Each
// service orchestrates driven ports and holds no infrastructure code
// of its own; everything external arrives through an interface.
package services
