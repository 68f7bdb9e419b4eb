package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/hemicycle/pkg/errors"
)

func TestClientFetch(t *testing.T) {
	var gotAuth, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"bills":{}}`))
		case "/missing":
			http.Error(w, "no such dataset", http.StatusNotFound)
		case "/down":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		}
	}))
	defer srv.Close()

	client := New(WithAuth(&BearerAuth{}, "tok"), WithUserAgent("hemicycle-test"))

	t.Run("success", func(t *testing.T) {
		body, err := client.Fetch(context.Background(), "voting", srv.URL+"/ok")
		require.NoError(t, err)
		assert.JSONEq(t, `{"bills":{}}`, string(body))
		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Equal(t, "hemicycle-test", gotUA)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.Fetch(context.Background(), "voting", srv.URL+"/missing")
		require.Error(t, err)
		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "voting", apiErr.Source)
		assert.Equal(t, "no such dataset", apiErr.Message)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("unavailable", func(t *testing.T) {
		_, err := client.Fetch(context.Background(), "contacts", srv.URL+"/down")
		require.Error(t, err)
		assert.True(t, errors.IsSourceUnavailable(err))
	})

	t.Run("body limit", func(t *testing.T) {
		small := New(WithMaxBytes(16))
		_, err := small.Fetch(context.Background(), "voting", srv.URL+"/big")
		require.Error(t, err)
		var ioErr *errors.IOError
		assert.ErrorAs(t, err, &ioErr)
	})

	t.Run("connection refused", func(t *testing.T) {
		dead := httptest.NewServer(http.NotFoundHandler())
		url := dead.URL
		dead.Close()
		_, err := client.Fetch(context.Background(), "voting", url)
		require.Error(t, err)
		assert.True(t, errors.IsSourceUnavailable(err))
	})
}

func TestClientFetchCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Fetch(ctx, "voting", srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsCanceled(err))
}

func TestClientFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := New(WithTimeout(50 * time.Millisecond))
	assert.Equal(t, 50*time.Millisecond, client.Timeout())

	_, err := client.Fetch(context.Background(), "contacts", srv.URL)
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err))
}

func TestReadBody(t *testing.T) {
	resp := &http.Response{Body: http.NoBody}
	body, err := ReadBody(resp, 0)
	require.NoError(t, err)
	assert.Empty(t, body)
}
