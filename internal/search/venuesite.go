package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ExhibitSync/internal/model"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// ChannelVenueSite is the provenance tag for venue-page items.
const ChannelVenueSite = "venue_site"

// VenueSiteChannel crawls a venue's own exhibition-list page using the CSS
// selectors stored on the venue row. Venues without selectors are simply
// skipped, since not every venue exposes a crawlable page.
type VenueSiteChannel struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewVenueSiteChannel(httpClient *http.Client, logger *logrus.Logger) *VenueSiteChannel {
	return &VenueSiteChannel{httpClient: httpClient, logger: logger}
}

func (v *VenueSiteChannel) Name() string { return ChannelVenueSite }

func (v *VenueSiteChannel) FetchVenue(ctx context.Context, venue *model.Venue) ([]model.RawItem, error) {
	if venue.Website == "" || venue.ListSelector == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, venue.Website, nil)
	if err != nil {
		return nil, fmt.Errorf("build venue page request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ExhibitSync/1.0)")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch venue page %s: %w", venue.Website, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch venue page %s: status %d", venue.Website, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse venue page %s: %w", venue.Website, err)
	}

	base, _ := url.Parse(venue.Website)

	var items []model.RawItem
	doc.Find(venue.ListSelector).Each(func(_ int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(venue.TitleSelector).Text())
		if title == "" {
			return
		}

		// The extractor wants the item's whole text so the period pattern
		// can match even when the date selector is missing or stale.
		snippet := strings.TrimSpace(sel.Text())
		if venue.DateSelector != "" {
			if d := strings.TrimSpace(sel.Find(venue.DateSelector).Text()); d != "" {
				snippet = d + " " + snippet
			}
		}

		link := venue.Website
		if href, ok := sel.Find("a").First().Attr("href"); ok && base != nil {
			if resolved, err := base.Parse(href); err == nil {
				link = resolved.String()
			}
		}

		items = append(items, model.RawItem{
			// Titles from venue pages carry no delimiters, so wrap them the
			// way search snippets do and let the extractor's bracket pattern
			// pick them up.
			Title:   "[" + title + "]",
			Snippet: snippet,
			Link:    link,
		})
	})

	return items, nil
}
