// Package connectors provides implementations of the TranscriptSource
// interface. The only connector reads transcript files from a local
// directory; the subtitle extraction that produces those files is an
// external tool.
package connectors
