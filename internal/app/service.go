package app

import (
	"time"

	"github.com/google/uuid"

	"debdepot/internal/adapters"
	"debdepot/internal/ports"
)

type Service struct {
	Cache     ports.CacheStorePort
	Indexes   ports.IndexFetcherPort
	Files     ports.FileFetcherPort
	Sources   ports.SourceListPort
	Profiles  ports.ProfileSourcePort
	Platform  ports.PlatformPort
	LocalDebs ports.LocalDebsPort
	Clock     func() time.Time
	NewRunID  func() string
}

// NewService wires the default adapters. The cache store opens its
// file lazily on first use, so constructing a service never touches
// disk.
func NewService(cachePath string, httpTimeoutSec int) Service {
	fetcher := adapters.NewHTTPFetcherAdapter(httpTimeoutSec)
	return Service{
		Cache:     adapters.NewCacheStoreAdapter(cachePath),
		Indexes:   fetcher,
		Files:     fetcher,
		Sources:   adapters.NewSourcesFileAdapter(),
		Profiles:  adapters.NewProfilesFileAdapter(),
		Platform:  adapters.NewOSReleaseAdapter(),
		LocalDebs: adapters.NewLocalDebsAdapter(),
		Clock:     time.Now,
		NewRunID:  uuid.NewString,
	}
}

func (s Service) Close() error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Close()
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

func (s Service) runID() string {
	if s.NewRunID != nil {
		return s.NewRunID()
	}
	return uuid.NewString()
}
