package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<a href="https://www.google.com/preferences">settings</a>
<a href="https://janedoetherapy.com/contact">Jane Doe Therapy</a>
<a href="https://janedoetherapy.com/contact">duplicate</a>
<a href="https://facebook.com/janedoe">social</a>
<a href="https://austincounseling.org">Austin Counseling</a>
<a href="https://extra-one.com">1</a>
<a href="https://extra-two.com">2</a>
<a href="/relative/path">relative</a>
</body></html>`

func TestGoogleSearch(t *testing.T) {
	t.Parallel()

	t.Run("extracts filters and caps results", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "jane doe therapist contact information", r.URL.Query().Get("q"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(resultsPage))
		}))
		defer srv.Close()

		g := NewGoogle(5*time.Second, WithGoogleBaseURL(srv.URL))
		urls, err := g.Search(context.Background(), "jane doe therapist contact information", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://janedoetherapy.com/contact",
			"https://austincounseling.org",
			"https://extra-one.com",
		}, urls)
	})

	t.Run("non 200 is an error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		g := NewGoogle(5*time.Second, WithGoogleBaseURL(srv.URL))
		_, err := g.Search(context.Background(), "jane doe", 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestBingSearch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		_, _ = w.Write([]byte(`<a href="https://bing.com/internal">x</a><a href="https://janedoe.com">ok</a>`))
	}))
	defer srv.Close()

	b := NewBing(5*time.Second, WithBingBaseURL(srv.URL))
	urls, err := b.Search(context.Background(), "jane doe", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://janedoe.com"}, urls)
}

func TestIsExcluded(t *testing.T) {
	t.Parallel()

	assert.True(t, isExcluded("https://www.GOOGLE.com/maps", googleExcluded))
	assert.True(t, isExcluded("https://m.facebook.com/page", googleExcluded))
	assert.False(t, isExcluded("https://janedoetherapy.com", googleExcluded))
}

func TestEncodeQuery(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "jane+doe+%26+co", encodeQuery("jane doe & co"))
}
