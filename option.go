package srtworker

import (
	"net/http"

	"github.com/viant/afs"
	"github.com/viant/srtworker/model/message"
	"github.com/viant/srtworker/service/asset"
	"github.com/viant/srtworker/service/dictionary"
	"github.com/viant/srtworker/service/engine"
	"github.com/viant/srtworker/service/messaging"
	"github.com/viant/srtworker/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises the service
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithEngine sets the conversion engine; the ASS to SRT engine is used by default.
func WithEngine(anEngine engine.Engine) Option {
	return func(s *Service) {
		s.engine = anEngine
	}
}

// WithFs sets the file system used for source files, dictionaries and outputs
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithAssetBaseURL sets the location conversion outputs are written to
func WithAssetBaseURL(URL string) Option {
	return func(s *Service) {
		s.assetBaseURL = URL
	}
}

// WithAssetStore sets a custom output handle store
func WithAssetStore(store asset.Store) Option {
	return func(s *Service) {
		s.assets = store
	}
}

// WithDictionaryLoader sets a custom dictionary loader
func WithDictionaryLoader(loader dictionary.Loader) Option {
	return func(s *Service) {
		s.loader = loader
	}
}

// WithHTTPClient sets the client used to fetch HTTP(S) dictionaries
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithQueue sets the inbound request queue
func WithQueue(queue messaging.Queue[message.Request]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithResponseQueue sets the outbound response queue
func WithResponseQueue(queue messaging.Queue[message.Response]) Option {
	return func(s *Service) {
		s.responses = queue
	}
}

// WithTracing configures OpenTelemetry tracing with the stdout exporter. If outputFile is empty
// traces go to stdout. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
