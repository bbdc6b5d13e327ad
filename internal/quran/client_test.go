// Copyright (c) 2026 AtharHuda. All rights reserved.

package quran

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharhuda/atharhuda/internal/platform/apperr"
)

// newProviderStub serves a minimal alquran.cloud juz payload and counts hits.
func newProviderStub(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)
		writer.Header().Set("Content-Type", "application/json")
		fmt.Fprint(writer, `{
			"code": 200,
			"data": {
				"number": 1,
				"ayahs": [
					{"number": 1, "text": "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ", "numberInSurah": 1,
					 "surah": {"number": 1, "name": "سورة الفاتحة"}},
					{"number": 2, "text": "الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ", "numberInSurah": 2,
					 "surah": {"number": 1, "name": "سورة الفاتحة"}}
				]
			}
		}`)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func newTestClient(t *testing.T, baseURL string, cache Cache) *Client {
	t.Helper()

	return NewClient(Options{
		BaseURL:            baseURL,
		AudioBaseURL:       "https://cdn.example/audio/128",
		TextEdition:        "quran-uthmani",
		TranslationEdition: "en.asad",
		DefaultReciter:     "ar.alafasy",
	}, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestFetchJuz_MergesEditionsAndAudio verifies the verse merge and the
audio URL derivation.
*/
func TestFetchJuz_MergesEditionsAndAudio(t *testing.T) {
	server, hits := newProviderStub(t)
	client := newTestClient(t, server.URL, NewMemoryCache())

	page, err := client.FetchJuz(context.Background(), 1, "")
	require.NoError(t, err)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, "ar.alafasy", page.Reciter, "empty reciter uses the default")
	require.Len(t, page.Verses, 2)

	first := page.Verses[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "سورة الفاتحة", first.SurahName)
	assert.NotEmpty(t, first.Text)
	assert.NotEmpty(t, first.Translation, "translation edition merged by position")
	assert.Equal(t, "https://cdn.example/audio/128/ar.alafasy/1.mp3", first.AudioURL)

	assert.Equal(t, int64(2), hits.Load(), "one request per edition")
}

/*
TestFetchJuz_CacheHit: the second fetch is served from cache, and a reciter
change reuses the cached verses with new audio URLs.
*/
func TestFetchJuz_CacheHit(t *testing.T) {
	server, hits := newProviderStub(t)
	client := newTestClient(t, server.URL, NewMemoryCache())
	ctx := context.Background()

	_, err := client.FetchJuz(ctx, 1, "")
	require.NoError(t, err)
	require.Equal(t, int64(2), hits.Load())

	page, err := client.FetchJuz(ctx, 1, "ar.husary")
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load(), "cache hit skips the provider")
	assert.Equal(t, "https://cdn.example/audio/128/ar.husary/1.mp3", page.Verses[0].AudioURL)
}

/*
TestFetchJuz_RedisCache runs the same hit/miss flow against miniredis.
*/
func TestFetchJuz_RedisCache(t *testing.T) {
	mini := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	server, hits := newProviderStub(t)
	client := newTestClient(t, server.URL, NewRedisCache(redisClient))
	ctx := context.Background()

	_, err := client.FetchJuz(ctx, 1, "")
	require.NoError(t, err)
	require.Equal(t, int64(2), hits.Load())

	_, err = client.FetchJuz(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())

	// After the TTL lapses the provider is consulted again.
	mini.FastForward(25 * time.Hour)
	_, err = client.FetchJuz(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(4), hits.Load())
}

/*
TestFetchJuz_UpstreamFailure maps provider errors to a retryable 503.
*/
func TestFetchJuz_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL, NewMemoryCache())

	_, err := client.FetchJuz(context.Background(), 1, "")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusServiceUnavailable, appError.HTTPStatus)
	assert.True(t, appError.Retryable)
}

/*
TestMemoryCache_Expiry covers the lazy TTL check.
*/
func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	current := time.Now()
	cache.now = func() time.Time { return current }

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))

	payload, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), payload)

	current = current.Add(2 * time.Minute)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
