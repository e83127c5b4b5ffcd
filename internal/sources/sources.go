package sources

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"bearwatch/internal/logger"
	"bearwatch/internal/models"
)

// Fetcher fans out to every registered source and concatenates the results
// in registration order. Individual source failures are logged and absorbed;
// when every source comes back empty the canned mock batch is returned.
type Fetcher struct {
	sources []models.SignalSource
	limit   int
	log     zerolog.Logger
}

func NewFetcher(limit int, srcs ...models.SignalSource) *Fetcher {
	return &Fetcher{
		sources: srcs,
		limit:   limit,
		log:     logger.Get().With().Str("component", "sources").Logger(),
	}
}

func (f *Fetcher) FetchAll(ctx context.Context) []models.Signal {
	batches := make([][]models.Signal, len(f.sources))
	var wg sync.WaitGroup

	for i, source := range f.sources {
		wg.Add(1)
		go func(i int, src models.SignalSource) {
			defer wg.Done()

			signals, err := src.FetchSignals(ctx, f.limit)
			if err != nil {
				f.log.Warn().Err(err).Str("source", src.GetName()).Msg("fetch failed")
				return
			}
			batches[i] = signals
		}(i, source)
	}

	wg.Wait()

	var all []models.Signal
	for _, batch := range batches {
		all = append(all, batch...)
	}

	if len(all) == 0 {
		f.log.Warn().Msg("all sources empty, falling back to mock signals")
		return MockSignals()
	}

	f.log.Debug().Int("count", len(all)).Msg("fetched signals")
	return all
}
