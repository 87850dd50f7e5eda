package search

import (
	"context"
	"strings"

	"ExhibitSync/internal/config"
	"ExhibitSync/internal/model"

	"github.com/mmcdole/gofeed"
	"github.com/sirupsen/logrus"
)

// ChannelFeed is the provenance tag for RSS-sourced items.
const ChannelFeed = "rss"

// FeedChannel pulls configured art-news RSS feeds and keeps the entries that
// mention the venue. Feeds are general-purpose, so the venue filter is what
// makes the result set per-venue.
type FeedChannel struct {
	feeds  []config.FeedConfig
	parser *gofeed.Parser
	logger *logrus.Logger
}

func NewFeedChannel(feeds []config.FeedConfig, logger *logrus.Logger) *FeedChannel {
	return &FeedChannel{
		feeds:  feeds,
		parser: gofeed.NewParser(),
		logger: logger,
	}
}

func (f *FeedChannel) Name() string { return ChannelFeed }

// FetchVenue parses every configured feed and returns entries that mention
// the venue by either display name. A feed that fails to parse is logged
// and skipped; the remaining feeds still contribute.
func (f *FeedChannel) FetchVenue(ctx context.Context, venue *model.Venue) ([]model.RawItem, error) {
	var items []model.RawItem

	for _, src := range f.feeds {
		feed, err := f.parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			f.logger.WithError(err).WithField("feed", src.Name).Warn("feed fetch failed, skipping")
			continue
		}

		for _, entry := range feed.Items {
			if entry == nil || !mentionsVenue(entry, venue) {
				continue
			}
			item := model.RawItem{
				Title:   entry.Title,
				Snippet: entry.Description,
				Link:    entry.Link,
			}
			if entry.PublishedParsed != nil {
				item.Published = *entry.PublishedParsed
			}
			items = append(items, item)
		}
	}

	return items, nil
}

func mentionsVenue(entry *gofeed.Item, venue *model.Venue) bool {
	text := strings.ToLower(entry.Title + " " + entry.Description)
	if strings.Contains(text, strings.ToLower(venue.Name)) {
		return true
	}
	return venue.NameEn != "" && strings.Contains(text, strings.ToLower(venue.NameEn))
}
