package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type doc struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{Dataset: "production", APIVersion: "2024-10-01", Token: token, Host: srv.URL})
	require.NoError(t, err)
	return c
}

func TestClient_Query_DecodesResult(t *testing.T) {
	var gotPath, gotQuery, gotID, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotID = r.URL.Query().Get("$id")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ms":3,"query":"...","result":{"_id":"abc","title":"Acme"}}`))
	}, "secret")

	var out *doc
	err := c.Query(context.Background(), `*[_id == $id][0]`, map[string]any{"id": "abc"}, &out)

	require.NoError(t, err)
	require.NotNil(t, out)
	require.Equal(t, "Acme", out.Title)
	require.Equal(t, "/v2024-10-01/data/query/production", gotPath)
	require.Equal(t, `*[_id == $id][0]`, gotQuery)
	require.Equal(t, `"abc"`, gotID)
	require.Equal(t, "Bearer secret", gotAuth)
}

func TestClient_Query_NullResultLeavesPointerNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ms":1,"result":null}`))
	}, "")

	var out *doc
	err := c.Query(context.Background(), `*[_id == $id][0]`, map[string]any{"id": "missing"}, &out)

	require.NoError(t, err)
	require.Nil(t, out)
}

func TestClient_Query_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"description":"unexpected token","type":"queryParseError"}}`))
	}, "")

	var out []doc
	err := c.Query(context.Background(), `*[`, nil, &out)

	require.ErrorIs(t, err, ErrQuery)
	require.Contains(t, err.Error(), "unexpected token")
	require.Contains(t, err.Error(), "queryParseError")
}

func TestClient_Query_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c, err := NewClient(Options{Dataset: "production", Host: srv.URL})
	require.NoError(t, err)
	srv.Close()

	var out []doc
	err = c.Query(context.Background(), `*`, nil, &out)

	require.ErrorIs(t, err, ErrQuery)
}

func TestNewClient_Hosts(t *testing.T) {
	c, err := NewClient(Options{ProjectID: "p1", Dataset: "production", APIVersion: "v2021-10-21", UseCDN: true})
	require.NoError(t, err)
	require.Equal(t, "https://p1.apicdn.sanity.io/v2021-10-21/data/query/production", c.baseURL)

	c, err = NewClient(Options{ProjectID: "p1", Dataset: "production", UseCDN: true, Token: "t"})
	require.NoError(t, err)
	require.Equal(t, "https://p1.api.sanity.io/v2024-10-01/data/query/production", c.baseURL)

	_, err = NewClient(Options{Dataset: "production"})
	require.EqualError(t, err, "project id is required")

	_, err = NewClient(Options{ProjectID: "p1"})
	require.EqualError(t, err, "dataset is required")
}
