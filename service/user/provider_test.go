package user

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/dao"
	"gitee.com/taoJie_1/cellphone-agent/model/db"
	"gitee.com/taoJie_1/cellphone-agent/model/dto"
	"gitee.com/taoJie_1/cellphone-agent/model/enum"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) {
	t.Helper()
	conn, err := sqlx.Open(string(enum.SQLITE), ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	dao.DB = conn
	t.Cleanup(func() {
		_ = conn.Close()
		dao.DB = nil
	})
	require.NoError(t, dao.CreateTables(enum.SQLITE))

	tx, err := dao.DB.Beginx()
	require.NoError(t, err)
	_, err = dao.App.ProductDb.BatchInsert([]db.Products{
		{Sku: "IP15", Name: "iPhone 15", Brand: "Apple", Slug: "iphone-15", Image: "ip15.png", Price: 22990000, DiscountPercent: 10, RamGb: 6, StorageGb: 128,
			Variants: `[{"sku":"IP15-PINK","color":"Hồng","capacity":"128GB"},{"sku":"IP15-BLUE","color":"Xanh","capacity":"256GB","price":25990000}]`},
		{Sku: "A15", Name: "Galaxy A15", Brand: "Samsung", Slug: "galaxy-a15", Price: 4990000, RamGb: 8, StorageGb: 128},
	}, tx)
	require.NoError(t, err)
	_, err = dao.App.OrderDb.BatchInsert([]db.Orders{
		{OrderCode: "DH123", Phone: "0900000000", Status: "Đang giao", TotalAmount: 4990000, PaymentMethod: "COD",
			Items: `[{"name":"Galaxy A15","quantity":1,"price":4990000}]`},
		{OrderCode: "DH124", Status: "Đã hủy", Items: `not json`},
	}, tx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
}

func TestDbProductProvider(t *testing.T) {
	setupDB(t)
	p := NewDbProductProvider(newTestLogger(), "http://localhost:5173", nil)

	brand := "apple"
	list, err := p.Search(context.Background(), dto.SearchProductsArgs{Brand: brand, Color: "xanh"}, 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "IP15-BLUE", list[0].Sku)
	assert.Equal(t, int64(25990000), list[0].BasePrice)
	assert.Equal(t, int64(23391000), list[0].FinalPrice)
	assert.Equal(t, int64(10), list[0].DiscountPercent)
	assert.Equal(t, "6GB", list[0].Ram)
	assert.Equal(t, "ip15.png", list[0].Image)
	assert.Equal(t, "http://localhost:5173/product/iphone-15?color=Xanh&capacity=256GB", list[0].Url)

	ram := float64(8)
	list, err = p.Search(context.Background(), dto.SearchProductsArgs{RamGb: &ram}, 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Galaxy A15", list[0].Name)
}

func TestDbOrderProvider(t *testing.T) {
	setupDB(t)
	p := NewDbOrderProvider(newTestLogger(), time.UTC)

	status, err := p.Lookup(context.Background(), dto.CheckOrderArgs{OrderID: "DH123", PhoneNumber: "0900000000"})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, "Đang giao", status.Status)
	assert.Equal(t, int64(4990000), status.Total)
	require.Len(t, status.Items, 1)
	assert.Equal(t, "Galaxy A15", status.Items[0].Name)
	assert.NotEmpty(t, status.CreatedAt)

	status, err = p.Lookup(context.Background(), dto.CheckOrderArgs{OrderID: "DH124"})
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Empty(t, status.Items)

	status, err = p.Lookup(context.Background(), dto.CheckOrderArgs{OrderID: "DH999"})
	require.NoError(t, err)
	assert.Nil(t, status)
}

type fakeMcp struct {
	text      string
	err       error
	tool      string
	args      json.RawMessage
	missing   bool
	refreshes int
}

func (f *fakeMcp) Tools() []mcpsdk.Tool { return nil }
func (f *fakeMcp) HasTool(string) bool  { return !f.missing }
func (f *fakeMcp) Refresh(context.Context) error {
	f.refreshes++
	return nil
}
func (f *fakeMcp) Close() error { return nil }
func (f *fakeMcp) ExecuteTool(_ context.Context, tool string, args json.RawMessage) (string, error) {
	f.tool = tool
	f.args = args
	return f.text, f.err
}

func TestMcpOrderProvider(t *testing.T) {
	f := &fakeMcp{text: `{"data":{"orderId":"DH123","status":"Đang giao","totalAmount":"4990000","items":[{"productName":"Galaxy A15","qty":1}]}}`}
	p := NewMcpOrderProvider(f, "query_order")

	status, err := p.Lookup(context.Background(), dto.CheckOrderArgs{OrderID: "DH123"})
	require.NoError(t, err)
	assert.Equal(t, "query_order", f.tool)
	assert.JSONEq(t, `{"order_id":"DH123","phone_number":""}`, string(f.args))
	assert.Equal(t, &dto.OrderStatus{
		OrderID: "DH123",
		Status:  "Đang giao",
		Total:   4990000,
		Items:   []dto.OrderItem{{Name: "Galaxy A15", Quantity: 1}},
	}, status)

	f.err = errors.New("mcp down")
	_, err = p.Lookup(context.Background(), dto.CheckOrderArgs{OrderID: "DH123"})
	assert.Error(t, err)
}

func TestParseOrderText(t *testing.T) {
	assert.Nil(t, parseOrderText("", "A"))
	assert.Nil(t, parseOrderText(`{"found":false}`, "A"))
	assert.Nil(t, parseOrderText(`{"foo":"bar"}`, "A"))

	s := parseOrderText("Đơn hàng A đang được đóng gói", "A")
	require.NotNil(t, s)
	assert.Equal(t, "A", s.OrderID)
	assert.Equal(t, "Đơn hàng A đang được đóng gói", s.Status)

	s = parseOrderText(`{"order":{"status":"Đã giao"}}`, "A")
	require.NotNil(t, s)
	assert.Equal(t, "A", s.OrderID)
	assert.Equal(t, "Đã giao", s.Status)
}

func TestResolveMcpOrderProvider(t *testing.T) {
	log := newTestLogger()

	assert.Nil(t, resolveMcpOrderProvider(log, nil, "query_order"))

	f := &fakeMcp{missing: true}
	assert.Nil(t, resolveMcpOrderProvider(log, f, "query_order"))
	assert.Equal(t, 1, f.refreshes)

	f = &fakeMcp{}
	p := resolveMcpOrderProvider(log, f, "query_order")
	require.NotNil(t, p)
	assert.Equal(t, 0, f.refreshes)
}
