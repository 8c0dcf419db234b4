package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gitee.com/taoJie_1/cellphone-agent/internal/redis"
	"gitee.com/taoJie_1/cellphone-agent/model/config"
	"gitee.com/taoJie_1/cellphone-agent/utils"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const cacheKeyPrefix = "chatbot:products:"

// 商品列表在响应中可能出现的位置, 按顺序尝试
var productPaths = []string{"products", "data.products", "data", "items"}

// Query 商品列表查询条件, 零值字段不会出现在请求中
type Query struct {
	Search string
	Brand  string
	Min    *float64
	Max    *float64
	Limit  int
}

// Encode 生成查询串, 参数按键名排序
func (q Query) Encode() string {
	v := url.Values{}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if s := strings.TrimSpace(q.Brand); s != "" {
		v.Set("brand", s)
	}
	if q.Min != nil {
		v.Set("min", strconv.FormatFloat(*q.Min, 'f', -1, 64))
	}
	if q.Max != nil {
		v.Set("max", strconv.FormatFloat(*q.Max, 'f', -1, 64))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v.Encode()
}

// Service 商城 REST 接口客户端
type Service interface {
	// ListProducts 返回原始商品记录, 由调用方归一化
	ListProducts(ctx context.Context, q Query) ([]gjson.Result, error)
}

type client struct {
	log        logrus.FieldLogger
	httpClient *http.Client
	baseURL    string
	cache      redis.Service
	cacheTTL   int64
}

// NewClient cache 为 nil 时不缓存
func NewClient(log logrus.FieldLogger, cfg config.Store, cache redis.Service) Service {
	return &client{
		log:        log,
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		baseURL:    cfg.ApiBaseUrl,
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
	}
}

func (c *client) ListProducts(ctx context.Context, q Query) ([]gjson.Result, error) {
	query := q.Encode()

	if body, ok := c.getCache(ctx, query); ok {
		return ExtractProducts(body), nil
	}

	endpoint := c.baseURL + "/products"
	if query != "" {
		endpoint += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("创建商品查询请求失败[k2pz8w]: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求商品接口失败[d5qr1n]: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取商品接口响应失败[j8ve3t]: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("商品接口返回错误[w0hs4m]: HTTP %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("商品接口返回了非法JSON[g6ua9b]")
	}

	c.setCache(ctx, query, data)
	return ExtractProducts(data), nil
}

// ExtractProducts 兼容数组与 {products|data|data.products|items} 几种响应结构
func ExtractProducts(body []byte) []gjson.Result {
	root := gjson.ParseBytes(body)
	if root.IsArray() {
		return root.Array()
	}
	for _, path := range productPaths {
		if r := root.Get(path); r.IsArray() {
			return r.Array()
		}
	}
	return nil
}

func (c *client) getCache(ctx context.Context, query string) ([]byte, bool) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return nil, false
	}
	data, err := c.cache.Get(ctx, cacheKeyPrefix+query).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("读取商品缓存失败: %v", err)
		}
		return nil, false
	}
	return data, true
}

func (c *client) setCache(ctx context.Context, query string, data []byte) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.Set(ctx, cacheKeyPrefix+query, data, utils.GetTTLWithJitter(c.cacheTTL)).Err(); err != nil {
		c.log.Warnf("写入商品缓存失败: %v", err)
	}
}
