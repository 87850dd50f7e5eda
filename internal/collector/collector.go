// Package collector drives the per-venue fan-out: query generation, channel
// calls, extraction and deduplication. Failure isolation lives here: one
// failing (query, channel) pair never aborts the venue.
package collector

import (
	"context"
	"time"

	"ExhibitSync/internal/config"
	"ExhibitSync/internal/extract"
	"ExhibitSync/internal/interfaces"
	"ExhibitSync/internal/model"
	"ExhibitSync/internal/search"

	"github.com/sirupsen/logrus"
)

// Result is the outcome of collecting one venue.
type Result struct {
	Candidates []*model.Candidate
	Duplicates int
	Errors     []model.CollectionError
}

// Collector fans one venue out across all registered channels.
type Collector struct {
	queryChannels []interfaces.QueryChannel
	venueSources  []interfaces.VenueSource
	extractor     *extract.Extractor
	cfg           *config.CollectorConfig
	logger        *logrus.Logger
	now           func() time.Time
	sleep         func(time.Duration)
}

func New(
	queryChannels []interfaces.QueryChannel,
	venueSources []interfaces.VenueSource,
	extractor *extract.Extractor,
	cfg *config.CollectorConfig,
	logger *logrus.Logger,
) *Collector {
	return &Collector{
		queryChannels: queryChannels,
		venueSources:  venueSources,
		extractor:     extractor,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
		sleep:         time.Sleep,
	}
}

// CollectVenue gathers, extracts and deduplicates candidates for one venue.
// Provider errors are absorbed per call and recorded in the result; the
// remaining queries and channels still run.
func (c *Collector) CollectVenue(ctx context.Context, venue *model.Venue) *Result {
	res := &Result{}
	today := c.now()

	var raw []*model.Candidate
	queries := search.BuildQueries(venue, today, c.cfg.MaxQueries)

	first := true
	for _, query := range queries {
		for _, ch := range c.queryChannels {
			if !first {
				c.sleep(c.cfg.QueryDelay())
			}
			first = false

			items, err := ch.Search(ctx, query)
			if err != nil {
				c.logger.WithError(err).WithFields(logrus.Fields{
					"venue":   venue.Name,
					"channel": ch.Name(),
					"query":   query,
				}).Warn("channel query failed, continuing")
				res.Errors = append(res.Errors, model.CollectionError{
					Stage: model.StageSearch, Venue: venue.Name, Err: err.Error(),
				})
				continue
			}
			raw = append(raw, c.extractAll(items, ch.Name(), today)...)
		}
	}

	for _, src := range c.venueSources {
		items, err := src.FetchVenue(ctx, venue)
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"venue":   venue.Name,
				"channel": src.Name(),
			}).Warn("venue source failed, continuing")
			res.Errors = append(res.Errors, model.CollectionError{
				Stage: model.StageSearch, Venue: venue.Name, Err: err.Error(),
			})
			continue
		}
		raw = append(raw, c.extractAll(items, src.Name(), today)...)
	}

	res.Candidates = Dedup(raw)
	res.Duplicates = len(raw) - len(res.Candidates)
	return res
}

func (c *Collector) extractAll(items []model.RawItem, channel string, today time.Time) []*model.Candidate {
	candidates := make([]*model.Candidate, 0, len(items))
	for _, item := range items {
		if cand := c.extractor.Extract(item, channel, today); cand != nil {
			candidates = append(candidates, cand)
		}
	}
	return candidates
}
