package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sw33tLie/pricebot/pkg/alias"
	"github.com/sw33tLie/pricebot/pkg/catalog"
	"github.com/sw33tLie/pricebot/pkg/engine"
)

const sampleJSON = `[
  {"name": "Diamond", "price": "1.5b", "sales": "hot", "lastUpdate": "today", "category": "Gems"},
  {"name": "Diamond Sword", "price": "250k", "sales": "cold", "lastUpdate": "today", "category": "Weapons"},
  {"name": "Gold Bar", "price": "75", "sales": "cold", "lastUpdate": "today", "category": "Metals"}
]`

func newTestServer(t *testing.T, data string) (*httptest.Server, *engine.Engine) {
	t.Helper()
	e := engine.New(alias.New(map[string]string{"الماس": "Diamond"}), nil)
	source := catalog.BytesSource{Label: "test", Data: []byte(data)}
	reload := func(ctx context.Context) (int, error) { return e.LoadCatalog(ctx, source) }
	ts := httptest.NewServer(New(e, reload).Handler())
	t.Cleanup(ts.Close)
	return ts, e
}

func get(t *testing.T, url string, v interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if v != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	}
	return resp.StatusCode
}

func TestPingNeedsNoCatalog(t *testing.T) {
	ts, _ := newTestServer(t, sampleJSON)
	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPriceEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, sampleJSON)

	var errResp errorResponse
	assert.Equal(t, http.StatusServiceUnavailable, get(t, ts.URL+"/api/price?q=diamond", &errResp))

	resp, err := http.Post(ts.URL+"/api/reload", "application/json", nil)
	require.NoError(t, err)
	var rr reloadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rr))
	resp.Body.Close()
	assert.Equal(t, 3, rr.Loaded)

	var item map[string]interface{}
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/api/price?q=sword", &item))
	assert.Equal(t, "Diamond Sword", item["name"])
	assert.Equal(t, float64(250_000), item["numericPrice"])
	assert.Equal(t, "cold", item["sales"])

	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/api/price?q=%D8%A7%D9%84%D9%85%D8%A7%D8%B3", &item))
	assert.Equal(t, "Diamond", item["name"])

	assert.Equal(t, http.StatusNotFound, get(t, ts.URL+"/api/price?q=unobtainium", &errResp))
	assert.Equal(t, http.StatusBadRequest, get(t, ts.URL+"/api/price?q=", &errResp))
}

func TestItemsEndpoint(t *testing.T) {
	ts, e := newTestServer(t, sampleJSON)
	_, err := e.LoadCatalog(context.Background(), catalog.BytesSource{Label: "test", Data: []byte(sampleJSON)})
	require.NoError(t, err)

	var out itemsResponse
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/api/items?page_size=2", &out))
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, [][]string{{"Diamond", "Diamond Sword"}, {"Gold Bar"}}, out.Pages)

	var errResp errorResponse
	assert.Equal(t, http.StatusBadRequest, get(t, ts.URL+"/api/items?page_size=zero", &errResp))
}

func TestParseEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, sampleJSON)
	var out parseResponse
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/api/parse?token=1.5b", &out))
	assert.Equal(t, float64(1_500_000_000), out.Value)
}

func TestReloadFailureKeepsCatalog(t *testing.T) {
	ts, e := newTestServer(t, `[{"name": "broken"}]`)
	_, err := e.LoadCatalog(context.Background(), catalog.BytesSource{Label: "good", Data: []byte(sampleJSON)})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/reload", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var item map[string]interface{}
	assert.Equal(t, http.StatusOK, get(t, ts.URL+"/api/price?q=gold", &item))
	assert.Equal(t, "Gold Bar", item["name"])
}
