package processor

import (
	"github.com/viant/srtworker/model/message"
	"github.com/viant/srtworker/service/conversion"
	"github.com/viant/srtworker/service/dictionary"
	"github.com/viant/srtworker/service/messaging"
)

// Option customises the processor
type Option func(*Service)

// WithMessageQueue sets the inbound request queue
func WithMessageQueue(queue messaging.Queue[message.Request]) Option {
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

// WithDictionaryCache sets the dictionary cache
func WithDictionaryCache(cache *dictionary.Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithConversion sets the conversion task service
func WithConversion(conversion *conversion.Service) Option {
	return func(s *Service) {
		s.conversion = conversion
	}
}
