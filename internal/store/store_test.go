package store

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gitee.com/taoJie_1/cellphone-agent/internal/redis"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func ptr(f float64) *float64 { return &f }

func TestQueryEncode(t *testing.T) {
	assert.Equal(t, "", Query{}.Encode())
	assert.Equal(t, "brand=Samsung&limit=10&max=10000000", Query{Brand: "Samsung", Max: ptr(10000000), Limit: 10}.Encode())
	assert.Equal(t, "min=5500000.5&search=iphone", Query{Search: " iphone ", Min: ptr(5500000.5)}.Encode())
}

func TestExtractProducts(t *testing.T) {
	cases := map[string]string{
		"array":         `[{"name":"A"},{"name":"B"}]`,
		"products":      `{"products":[{"name":"A"},{"name":"B"}]}`,
		"data":          `{"data":[{"name":"A"},{"name":"B"}]}`,
		"data.products": `{"data":{"products":[{"name":"A"},{"name":"B"}]}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			got := ExtractProducts([]byte(body))
			require.Len(t, got, 2)
			assert.Equal(t, "B", got[1].Get("name").String())
		})
	}
	assert.Empty(t, ExtractProducts([]byte(`{"message":"ok"}`)))
}

func TestListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "Samsung", r.URL.Query().Get("brand"))
		assert.False(t, r.URL.Query().Has("search"))
		_, _ = io.WriteString(w, `{"data":{"products":[{"name":"Galaxy A15"}]}}`)
	}))
	defer srv.Close()

	c := NewClient(newTestLogger(), config.Store{ApiBaseUrl: srv.URL + "/api"}, nil)
	got, err := c.ListProducts(context.Background(), Query{Brand: "Samsung"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Galaxy A15", got[0].Get("name").String())
}

func TestListProducts_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(newTestLogger(), config.Store{ApiBaseUrl: srv.URL}, nil)
	_, err := c.ListProducts(context.Background(), Query{})
	assert.Error(t, err)
}

func TestListProducts_Cache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = io.WriteString(w, `[{"name":"iPhone 15"}]`)
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	cache, err := redis.NewClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	defer cache.Close()

	c := NewClient(newTestLogger(), config.Store{ApiBaseUrl: srv.URL, CacheTTL: 60}, cache)
	for i := 0; i < 3; i++ {
		got, err := c.ListProducts(context.Background(), Query{Search: "iphone", Limit: 3})
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.True(t, mr.Exists(cacheKeyPrefix+"limit=3&search=iphone"))

	// 缓存不可用时直接请求接口
	mr.Close()
	_, err = c.ListProducts(context.Background(), Query{Search: "iphone", Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
