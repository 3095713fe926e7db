package standvirtual

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientSearchPaginates(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/carros", r.URL.Path)
		queries = append(queries, r.URL.Query().Get("page"))

		if r.URL.Query().Get("page") == "" {
			w.Write([]byte(searchPageFixture))
			return
		}
		w.Write([]byte(`<html><body></body></html>`))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL, MaxPages: 3})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	listings, err := client.Search(ctx, SearchQuery{Brand: "bmw"})
	require.NoError(t, err)
	require.Len(t, listings, 2)

	// page 1 carries no page param, page 2 came back empty and
	// stopped the walk
	require.Equal(t, []string{"", "2"}, queries)
}

func TestClientSearchRespectsMaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPageFixture))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL, MaxPages: 10, MaxResults: 3})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	listings, err := client.Search(ctx, SearchQuery{Brand: "bmw"})
	require.NoError(t, err)
	require.Len(t, listings, 3)
}

func TestClientSearchFirstPageFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchQuery{Brand: "bmw"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 403")
}

func TestClientSearchRejectsInvalidQuery(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), SearchQuery{Fuel: "vapor"})
	require.Error(t, err)
}
