// Package tracing wraps OpenTelemetry so that the dispatcher, conversion
// tasks and dictionary loads can open spans without importing the upstream
// packages directly. Until Init (or InitWithExporter) is called every span
// is a no-op.
package tracing
