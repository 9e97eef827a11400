package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyMemoryClient_Translate(t *testing.T) {
	var gotQuery, gotLangpair string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLangpair = r.URL.Query().Get("langpair")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responseData":{"translatedText":" Good day "},"responseStatus":200}`))
	}))
	defer srv.Close()

	client := NewMyMemoryClient(srv.URL, time.Second)
	translated, err := client.Translate(context.Background(), "Guten Tag", "de", "en")

	require.NoError(t, err)
	assert.Equal(t, "Good day", translated, "translated text should be trimmed")
	assert.Equal(t, "Guten Tag", gotQuery)
	assert.Equal(t, "de|en", gotLangpair)
}

func TestMyMemoryClient_SameLanguageShortCircuits(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewMyMemoryClient(srv.URL, time.Second)
	translated, err := client.Translate(context.Background(), "Hello", "en", "en")

	require.NoError(t, err)
	assert.Equal(t, "Hello", translated)
	assert.False(t, called, "provider should not be called when source equals target")
}

func TestMyMemoryClient_ProviderFailures(t *testing.T) {
	tests := []struct {
		name        string
		handler     http.HandlerFunc
		unavailable bool
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			unavailable: true,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
			unavailable: true,
		},
		{
			name: "empty translation",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"responseData":{"translatedText":""}}`))
			},
			unavailable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewMyMemoryClient(srv.URL, time.Second)
			_, err := client.Translate(context.Background(), "Guten Tag", "de", "en")

			require.Error(t, err)
			assert.Equal(t, tt.unavailable, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestMyMemoryClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewMyMemoryClient(srv.URL, 20*time.Millisecond)
	_, err := client.Translate(context.Background(), "Guten Tag", "de", "en")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}
