package srtworker

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the dispatcher configuration.
// The zero-value of every nested field falls back to package defaults.
type Config struct {
	// QueueBuffer is the capacity of the inbound and outbound queues.
	QueueBuffer int `json:"queueBuffer" yaml:"queueBuffer"`
	// AssetBaseURL is where conversion outputs are written.
	AssetBaseURL string         `json:"assetBaseURL" yaml:"assetBaseURL"`
	Tracing      *TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`
}

// TracingConfig enables the stdout trace exporter.
type TracingConfig struct {
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	// OutputFile receives the traces; stdout when empty.
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		QueueBuffer:  100,
		AssetBaseURL: "mem://localhost/srtworker",
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.QueueBuffer <= 0 {
		return fmt.Errorf("queueBuffer must be > 0")
	}
	if c.AssetBaseURL == "" {
		return fmt.Errorf("assetBaseURL was empty")
	}
	if c.Tracing != nil && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.serviceName was empty")
	}
	return nil
}

// LoadConfig reads a YAML config from any storage URL. Fields absent from the
// document keep their default values.
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
