// Package extract turns raw search-result text into candidate exhibition
// records. The heuristics are deliberately small, ordered, and exposed as
// pure functions so they can be swapped or extended without touching the
// collection flow.
package extract

import (
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"ExhibitSync/internal/model"

	"github.com/sirupsen/logrus"
)

var (
	tagRe    = regexp.MustCompile(`<[^>]*>`)
	entityRe = regexp.MustCompile(`&[a-zA-Z#0-9]+;`)
	spaceRe  = regexp.MustCompile(`[\s\p{Zs}]+`) // \p{Zs} catches the NBSP left by &nbsp;

	// Title delimiters, first non-empty capture wins.
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\[(.+?)\]`),
		regexp.MustCompile(`「(.+?)」`),
		regexp.MustCompile(`『(.+?)』`),
		regexp.MustCompile(`《(.+?)》`),
		regexp.MustCompile(`“(.+?)”`),
		regexp.MustCompile(`"(.+?)"`),
		regexp.MustCompile(`‘(.+?)’`),
	}

	// YYYY.MM.DD ~ YYYY.MM.DD shaped period, with ./space/년월일 separators
	// and -/~ range dashes. The end year is optional and defaults to the
	// start year.
	periodRe = regexp.MustCompile(`(\d{4})\s*[.년]\s*(\d{1,2})\s*[.월]\s*(\d{1,2})\s*일?\s*[-~∼–]\s*(?:(\d{4})\s*[.년]\s*)?(\d{1,2})\s*[.월]\s*(\d{1,2})\s*일?`)

	artistLabelRe = regexp.MustCompile(`(?i)(?:작가|아티스트|참여작가|artists?)\s*[:：]\s*([^:：\n]+)`)
	artistSplitRe = regexp.MustCompile(`[,，、]`)

	freeRe = regexp.MustCompile(`(?i)무료|free`)
	wonRe  = regexp.MustCompile(`([\d,]+)\s*원`)
	yearRe = regexp.MustCompile(`\d{4}`)

	decorRe = regexp.MustCompile(`[『』「」《》【】\[\]<>]`)

	// Words that terminate an artist capture (the label regex is greedy up
	// to the line end, so trailing fee/period text must be cut off).
	artistStopWords = []string{"무료", "유료", "관람료", "입장료", "티켓", "기간", "장소", "전시"}
)

// StripMarkup reduces provider markup to plain text: entities decoded, tags
// removed, whitespace collapsed.
func StripMarkup(s string) string {
	s = html.UnescapeString(s)
	s = tagRe.ReplaceAllString(s, " ")
	s = entityRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// ExtractTitle returns the first delimiter-enclosed title, cleaned, or ""
// when no pattern matches.
func ExtractTitle(text string) string {
	for _, p := range titlePatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if title := CleanTitle(m[1]); title != "" {
				return title
			}
		}
	}
	return ""
}

// CleanTitle drops decorative brackets and collapses whitespace.
func CleanTitle(title string) string {
	title = decorRe.ReplaceAllString(title, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(title, " "))
}

// NormalizeTitle is the dedup/reconciliation form: lowercased with all
// whitespace removed.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(CleanTitle(title)), ""))
}

// ExtractPeriod parses the exhibition date range. ok is false when no
// plausible range is present; an exhibition without dates cannot be
// scheduled downstream.
func ExtractPeriod(text string) (start, end time.Time, ok bool) {
	m := periodRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, time.Time{}, false
	}

	startYear, _ := strconv.Atoi(m[1])
	startMonth, _ := strconv.Atoi(m[2])
	startDay, _ := strconv.Atoi(m[3])

	endYear := startYear
	if m[4] != "" {
		endYear, _ = strconv.Atoi(m[4])
	}
	endMonth, _ := strconv.Atoi(m[5])
	endDay, _ := strconv.Atoi(m[6])

	start, ok = makeDate(startYear, startMonth, startDay)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok = makeDate(endYear, endMonth, endDay)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// makeDate builds a UTC date and rejects values that calendar-normalize
// (e.g. month 13, day 32).
func makeDate(year, month, day int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ExtractArtists pulls the artist list from an "작가:" style label. Absence
// yields an empty list, never an error.
func ExtractArtists(text string) []string {
	m := artistLabelRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	capture := m[1]
	// Cut the capture at the first stop word or year so trailing fee or
	// period text does not leak into the last name.
	for _, stop := range artistStopWords {
		if idx := strings.Index(capture, stop); idx >= 0 {
			capture = capture[:idx]
		}
	}
	if idx := yearRe.FindStringIndex(capture); idx != nil {
		capture = capture[:idx[0]]
	}

	var artists []string
	for _, part := range artistSplitRe.Split(capture, -1) {
		if name := strings.TrimSpace(part); name != "" {
			artists = append(artists, name)
		}
	}
	return artists
}

// ExtractFee recognizes free admission and won amounts. nil means unknown,
// which is distinct from 0 (free).
func ExtractFee(text string) *int {
	if freeRe.MatchString(text) {
		fee := 0
		return &fee
	}
	if m := wonRe.FindStringSubmatch(text); m != nil {
		if fee, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", "")); err == nil {
			return &fee
		}
	}
	return nil
}

// Extractor applies the heuristic steps to raw items. A panic while parsing
// one item is recovered and the item skipped; one malformed item must never
// abort the batch.
type Extractor struct {
	logger *logrus.Logger
}

func NewExtractor(logger *logrus.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns the candidate parsed from one raw item, or nil when the
// item has no plausible title/date pair or the exhibition already ended
// before today.
func (e *Extractor) Extract(item model.RawItem, channel string, today time.Time) (cand *model.Candidate) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("link", item.Link).Warnf("extraction panic recovered, item skipped: %v", r)
			cand = nil
		}
	}()

	text := StripMarkup(item.Title + " " + item.Snippet)

	title := ExtractTitle(text)
	if title == "" {
		return nil
	}

	start, end, ok := ExtractPeriod(text)
	if !ok {
		return nil
	}

	// Only current and future exhibitions are ingested.
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if end.Before(todayDate) {
		return nil
	}

	description := StripMarkup(item.Snippet)
	if runes := []rune(description); len(runes) > 500 {
		description = string(runes[:500])
	}

	return &model.Candidate{
		Title:        title,
		Description:  description,
		StartDate:    start,
		EndDate:      end,
		Artists:      ExtractArtists(text),
		AdmissionFee: ExtractFee(text),
		Channel:      channel,
		SourceURL:    item.Link,
		Published:    item.Published,
	}
}
