package srtworker

import (
	"net/http"

	"github.com/viant/afs"
	"github.com/viant/srtworker/model/message"
	"github.com/viant/srtworker/service/asset"
	"github.com/viant/srtworker/service/conversion"
	"github.com/viant/srtworker/service/dictionary"
	"github.com/viant/srtworker/service/engine"
	"github.com/viant/srtworker/service/engine/ass"
	"github.com/viant/srtworker/service/messaging"
	"github.com/viant/srtworker/service/messaging/memory"
	"github.com/viant/srtworker/service/processor"
	"github.com/viant/srtworker/tracing"
)

// Service wires the dispatcher components
type Service struct {
	runtime      *Runtime
	config       *Config
	fs           afs.Service
	engine       engine.Engine
	httpClient   *http.Client
	loader       dictionary.Loader
	assets       asset.Store
	assetBaseURL string
	queue        messaging.Queue[message.Request]
	responses    messaging.Queue[message.Response]
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	if err := s.config.Validate(); err != nil {
		return err
	}
	if t := s.config.Tracing; t != nil {
		if err := tracing.Init(t.ServiceName, t.ServiceVersion, t.OutputFile); err != nil {
			return err
		}
	}

	cache := dictionary.NewCache(s.loader)
	aProcessor, err := processor.New(
		processor.WithMessageQueue(s.queue),
		processor.WithResponseQueue(s.responses),
		processor.WithDictionaryCache(cache),
		processor.WithConversion(conversion.New(s.fs, s.engine, s.assets)),
	)
	if err != nil {
		return err
	}
	s.runtime = &Runtime{
		processor: aProcessor,
		queue:     s.queue,
		responses: s.responses,
		cache:     cache,
		assets:    s.assets,
	}
	return nil
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.engine == nil {
		s.engine = ass.New()
	}
	if s.loader == nil {
		s.loader = dictionary.NewLoader(s.fs, s.httpClient)
	}
	if s.assets == nil {
		baseURL := s.assetBaseURL
		if baseURL == "" {
			baseURL = s.config.AssetBaseURL
		}
		s.assets = asset.New(s.fs, baseURL)
	}
	if s.queue == nil {
		s.queue = memory.NewQueue[message.Request](memory.Config{QueueBuffer: s.config.QueueBuffer, DeadLetter: true})
	}
	if s.responses == nil {
		s.responses = memory.NewQueue[message.Response](memory.Config{QueueBuffer: s.config.QueueBuffer})
	}
}

// Runtime returns the dispatcher runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// New creates a dispatcher service
func New(options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
