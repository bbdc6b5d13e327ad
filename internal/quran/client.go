// Copyright (c) 2026 AtharHuda. All rights reserved.

/*
Package quran fetches juz text and builds audio URLs from the public
alquran.cloud provider.

The client is a pure external collaborator: its failures surface as
retryable upstream errors to the HTTP layer and never touch the khatma
board's state. Fetched pages are cached (Redis or in-memory) because Quran
text never changes, and outbound requests are rate-limited to stay a polite
consumer of the free API.
*/
package quran

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/atharhuda/atharhuda/internal/platform/apperr"
	"github.com/atharhuda/atharhuda/internal/platform/constants"
)

// Verse is one ayah of a juz page, merged from the text and translation
// editions. Number is the global ayah number (1–6236), which also keys the
// per-ayah audio file.
type Verse struct {
	Number        int    `json:"number"`
	NumberInSurah int    `json:"numberInSurah"`
	SurahNumber   int    `json:"surahNumber"`
	SurahName     string `json:"surahName"`
	Text          string `json:"text"`
	Translation   string `json:"translation,omitempty"`
	AudioURL      string `json:"audioUrl,omitempty"`
}

// JuzPage is the reader view of one juz.
type JuzPage struct {
	Number  int     `json:"number"`
	Reciter string  `json:"reciter"`
	Verses  []Verse `json:"verses"`
}

// Options configures the provider endpoints and editions.
type Options struct {
	BaseURL            string
	AudioBaseURL       string
	TextEdition        string
	TranslationEdition string
	DefaultReciter     string
}

// # Client

// Client fetches juz pages with caching and outbound rate limiting.
type Client struct {
	httpClient *http.Client
	opts       Options
	limiter    *rate.Limiter
	cache      Cache
	logger     *slog.Logger
}

// NewClient constructs a provider client.
//
// The cache stores reciter-independent verse pages; audio URLs are derived
// locally per request, so changing the reciter never causes a refetch.
func NewClient(opts Options, cache Cache, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		opts:       opts,
		limiter:    rate.NewLimiter(rate.Limit(constants.QuranFetchRPS), constants.QuranFetchBurst),
		cache:      cache,
		logger:     logger,
	}
}

// editionResponse mirrors the provider's juz payload shape.
type editionResponse struct {
	Code int `json:"code"`
	Data struct {
		Number int `json:"number"`
		Ayahs  []struct {
			Number        int    `json:"number"`
			Text          string `json:"text"`
			NumberInSurah int    `json:"numberInSurah"`
			Surah         struct {
				Number int    `json:"number"`
				Name   string `json:"name"`
			} `json:"surah"`
		} `json:"ayahs"`
	} `json:"data"`
}

/*
FetchJuz returns the verses of one juz with per-ayah audio URLs.

Description: The Arabic text and the translation editions are fetched
separately and merged by position. A cache hit skips the provider entirely.
Provider failures come back as retryable upstream errors; the UI offers a
retry instead of breaking the reader.

Parameters:
  - ctx: context.Context
  - number: int (1–30)
  - reciter: string (Audio edition id; empty uses the configured default)

Returns:
  - JuzPage: Merged verse list, reader-ready
  - error: Retryable upstream [apperr.AppError] on provider failure
*/
func (client *Client) FetchJuz(ctx context.Context, number int, reciter string) (JuzPage, error) {
	if reciter == "" {
		reciter = client.opts.DefaultReciter
	}

	verses, err := client.cachedVerses(ctx, number)
	if err != nil {
		return JuzPage{}, err
	}

	// Audio URLs depend only on the reciter and the global ayah number.
	for i := range verses {
		verses[i].AudioURL = fmt.Sprintf("%s/%s/%d.mp3", client.opts.AudioBaseURL, reciter, verses[i].Number)
	}

	return JuzPage{Number: number, Reciter: reciter, Verses: verses}, nil
}

// cachedVerses returns the reciter-independent verse list, via cache.
func (client *Client) cachedVerses(ctx context.Context, number int) ([]Verse, error) {
	key := fmt.Sprintf("%s%d:%s:%s",
		constants.RedisPrefixQuranJuz, number, client.opts.TextEdition, client.opts.TranslationEdition)

	if payload, err := client.cache.Get(ctx, key); err == nil {
		var verses []Verse
		if err := json.Unmarshal(payload, &verses); err == nil {
			return verses, nil
		}
		// A corrupt entry falls through to a refetch and overwrite.
	}

	text, err := client.fetchEdition(ctx, number, client.opts.TextEdition)
	if err != nil {
		return nil, err
	}
	translation, err := client.fetchEdition(ctx, number, client.opts.TranslationEdition)
	if err != nil {
		return nil, err
	}

	verses := make([]Verse, len(text.Data.Ayahs))
	for i, ayah := range text.Data.Ayahs {
		verses[i] = Verse{
			Number:        ayah.Number,
			NumberInSurah: ayah.NumberInSurah,
			SurahNumber:   ayah.Surah.Number,
			SurahName:     ayah.Surah.Name,
			Text:          ayah.Text,
		}
		if i < len(translation.Data.Ayahs) {
			verses[i].Translation = translation.Data.Ayahs[i].Text
		}
	}

	if payload, err := json.Marshal(verses); err == nil {
		if err := client.cache.Set(ctx, key, payload, constants.QuranCacheTTL); err != nil {
			client.logger.Warn("quran_cache_write_failed", slog.Any("error", err))
		}
	}

	return verses, nil
}

// fetchEdition performs one rate-limited provider request.
func (client *Client) fetchEdition(ctx context.Context, number int, edition string) (editionResponse, error) {
	var decoded editionResponse

	if err := client.limiter.Wait(ctx); err != nil {
		return decoded, apperr.Upstream("Quran provider unavailable", err)
	}

	url := fmt.Sprintf("%s/juz/%d/%s", client.opts.BaseURL, number, edition)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decoded, apperr.Internal(err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Warn("quran_fetch_failed",
			slog.Int("juz", number),
			slog.String("edition", edition),
			slog.Any("error", err),
		)
		return decoded, apperr.Upstream("Quran provider unavailable", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		err := fmt.Errorf("provider returned %d: %s", response.StatusCode, body)
		client.logger.Warn("quran_fetch_failed",
			slog.Int("juz", number),
			slog.String("edition", edition),
			slog.Any("error", err),
		)
		return decoded, apperr.Upstream("Quran provider unavailable", err)
	}

	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return decoded, apperr.Upstream("Quran provider returned an unreadable response", err)
	}

	return decoded, nil
}
