package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"gitee.com/taoJie_1/cellphone-agent/internal/store"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/model/dto"
	"gitee.com/taoJie_1/cellphone-agent/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStoreServer 返回 n 个商品, 并记录最后一次查询串
func newStoreServer(t *testing.T, body string, lastQuery *atomic.Value, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		if lastQuery != nil {
			lastQuery.Store(r.URL.RawQuery)
		}
		assert.Equal(t, "/api/products", r.URL.Path)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func productsBody(n int) string {
	items := make([]string, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(`{"_id":"p%d","name":"Galaxy A%d","brand":"Samsung","price":%d}`, i, i, 5000000+i))
	}
	return `{"products":[` + strings.Join(items, ",") + `]}`
}

func newTestExecutor(t *testing.T, providers provider.Providers, storeURL string) *toolExecutor {
	t.Helper()
	log := newTestLogger()
	var storeService store.Service
	if storeURL != "" {
		storeService = store.NewClient(log, config.Store{ApiBaseUrl: storeURL + "/api"}, nil)
	}
	return NewToolExecutor(log, providers, storeService, nil, config.Chat{}, "http://localhost:5173")
}

func call(name, args string) dto.ToolCall {
	return dto.ToolCall{ID: "call_1", Name: name, Arguments: json.RawMessage(args)}
}

func TestExecute_UnknownTool(t *testing.T) {
	e := newTestExecutor(t, provider.Providers{}, "")
	assert.Equal(t, dto.ToolError{Error: "Tool không được hỗ trợ"}, e.Execute(context.Background(), call("deleteOrder", `{}`)))
}

func TestExecute_BadArguments(t *testing.T) {
	e := newTestExecutor(t, provider.Providers{}, "")

	res := e.Execute(context.Background(), call("checkOrder", `"{order_id: DH1"`))
	require.IsType(t, dto.ToolError{}, res)
	assert.NotEmpty(t, res.(dto.ToolError).Error)

	// 缺少必填参数
	res = e.Execute(context.Background(), call("checkOrder", `{"phone_number":"0900000000"}`))
	require.IsType(t, dto.ToolError{}, res)
}

func TestExecute_SearchProductsFallback(t *testing.T) {
	var q atomic.Value
	srv := newStoreServer(t, productsBody(12), &q, nil)
	e := newTestExecutor(t, provider.Providers{}, srv.URL)

	res := e.Execute(context.Background(), call("searchProducts", `{"brand":"Samsung","price_max":10000000,"limit":50}`))
	require.IsType(t, dto.SearchProductsResult{}, res)
	result := res.(dto.SearchProductsResult)
	assert.True(t, result.Success)
	assert.Equal(t, 10, result.Count)
	assert.Len(t, result.Products, 10)
	assert.Equal(t, "brand=Samsung&limit=10&max=10000000", q.Load())

	first := result.Products[0]
	assert.Equal(t, "Galaxy A0", first.Name)
	assert.Equal(t, int64(5000000), first.FinalPrice)
	assert.Equal(t, "http://localhost:5173/product/p0", first.Url)
}

func TestExecute_SearchProductsStringArguments(t *testing.T) {
	var q atomic.Value
	srv := newStoreServer(t, productsBody(5), &q, nil)
	e := newTestExecutor(t, provider.Providers{}, srv.URL)

	res := e.Execute(context.Background(), call("searchProducts", `"{\"keyword\":\"galaxy\",\"price_min\":\"3000000\",\"limit\":\"abc\"}"`))
	result := res.(dto.SearchProductsResult)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, "limit=3&min=3000000&search=galaxy", q.Load())
}

func TestExecute_SearchProductsNegativeNumbers(t *testing.T) {
	var q atomic.Value
	srv := newStoreServer(t, productsBody(2), &q, nil)
	e := newTestExecutor(t, provider.Providers{}, srv.URL)

	res := e.Execute(context.Background(), call("searchProducts", `{"brand":"Samsung","price_min":-1,"ram_gb":-4}`))
	require.IsType(t, dto.SearchProductsResult{}, res)
	assert.Equal(t, 2, res.(dto.SearchProductsResult).Count)
	assert.Equal(t, "brand=Samsung&limit=3&min=-1", q.Load())
}

func TestExecute_SearchProductsLimitLowerBound(t *testing.T) {
	var q atomic.Value
	srv := newStoreServer(t, productsBody(5), &q, nil)
	e := newTestExecutor(t, provider.Providers{}, srv.URL)

	result := e.Execute(context.Background(), call("searchProducts", `{"limit":0}`)).(dto.SearchProductsResult)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "limit=1", q.Load())
}

func TestExecute_SearchProductsProviderFirst(t *testing.T) {
	var hits int32
	srv := newStoreServer(t, productsBody(5), nil, &hits)
	products := &mockProductProvider{products: []dto.ProductSuggestion{{Name: "iPhone 15", FinalPrice: 21990000}}}
	e := newTestExecutor(t, provider.Providers{Products: products}, srv.URL)

	result := e.Execute(context.Background(), call("searchProducts", `{"keyword":"iphone"}`)).(dto.SearchProductsResult)
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "iPhone 15", result.Products[0].Name)
	assert.Equal(t, 3, products.limit)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestExecute_SearchProductsProviderEmptyOrError(t *testing.T) {
	var hits int32
	srv := newStoreServer(t, productsBody(2), nil, &hits)

	for _, p := range []*mockProductProvider{{}, {err: errors.New("db down")}} {
		e := newTestExecutor(t, provider.Providers{Products: p}, srv.URL)
		result := e.Execute(context.Background(), call("searchProducts", `{}`)).(dto.SearchProductsResult)
		assert.Equal(t, 2, result.Count)
		assert.Equal(t, 1, p.calls)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestExecute_SearchProductsSpecFilter(t *testing.T) {
	body := `[
		{"_id":"a","name":"A","price":1,"ram":"4GB","storage":"64GB"},
		{"_id":"b","name":"B","price":1,"ram":"8GB","storage":"256GB"},
		{"_id":"c","name":"C","price":1}
	]`
	srv := newStoreServer(t, body, nil, nil)
	e := newTestExecutor(t, provider.Providers{}, srv.URL)

	result := e.Execute(context.Background(), call("searchProducts", `{"ram_gb":8,"limit":10}`)).(dto.SearchProductsResult)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "B", result.Products[0].Name)
	assert.Equal(t, "C", result.Products[1].Name)

	result = e.Execute(context.Background(), call("searchProducts", `{"storage_gb":"128","limit":10}`)).(dto.SearchProductsResult)
	require.Equal(t, 2, result.Count)
	assert.Equal(t, "B", result.Products[0].Name)
}

func TestExecute_SearchProductsStoreError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	e := newTestExecutor(t, provider.Providers{}, srv.URL)

	res := e.Execute(context.Background(), call("searchProducts", `{}`))
	assert.IsType(t, dto.ToolError{}, res)
}

func TestExecute_CheckOrder(t *testing.T) {
	orders := &mockOrderProvider{status: &dto.OrderStatus{OrderID: "123", Status: "Đã giao"}}
	e := newTestExecutor(t, provider.Providers{Orders: orders}, "")

	res := e.Execute(context.Background(), call("checkOrder", `{"order_id":123,"phone_number":"0900000000"}`))
	assert.Equal(t, dto.OrderStatus{OrderID: "123", Status: "Đã giao"}, res)
	assert.Equal(t, dto.CheckOrderArgs{OrderID: "123", PhoneNumber: "0900000000"}, orders.got)

	orders.status = nil
	res = e.Execute(context.Background(), call("checkOrder", `{"order_id":"X"}`))
	assert.Equal(t, dto.OrderStatus{Status: "Không tìm thấy", Message: "Không tìm thấy đơn hàng."}, res)

	orders.err = errors.New("order service down")
	res = e.Execute(context.Background(), call("checkOrder", `{"order_id":"X"}`))
	assert.Equal(t, dto.ToolError{Error: "order service down"}, res)
}

type panicOrderProvider struct{}

func (panicOrderProvider) Lookup(context.Context, dto.CheckOrderArgs) (*dto.OrderStatus, error) {
	panic("boom")
}

func TestExecute_Recover(t *testing.T) {
	e := newTestExecutor(t, provider.Providers{Orders: panicOrderProvider{}}, "")
	assert.Equal(t, dto.ToolError{Error: "boom"}, e.Execute(context.Background(), call("checkOrder", `{"order_id":"X"}`)))
}

func TestExecute_Idempotent(t *testing.T) {
	srv := newStoreServer(t, productsBody(4), nil, nil)
	e := newTestExecutor(t, provider.Providers{}, srv.URL)

	c := call("searchProducts", `{"brand":"Samsung"}`)
	assert.Equal(t, e.Execute(context.Background(), c), e.Execute(context.Background(), c))
}
