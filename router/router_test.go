package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gitee.com/taoJie_1/cellphone-agent/global"
	"gitee.com/taoJie_1/cellphone-agent/model/dto"
	"gitee.com/taoJie_1/cellphone-agent/pkg/llm"
	"gitee.com/taoJie_1/cellphone-agent/service"
	"gitee.com/taoJie_1/cellphone-agent/service/user"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	reply   string
	err     error
	calls   int
	got     string
	healthy bool
}

func (f *fakeChat) Reply(_ context.Context, message string) (string, error) {
	f.calls++
	f.got = message
	return f.reply, f.err
}

func (f *fakeChat) Ping(context.Context) (string, string, error) {
	return f.reply, "qwen2.5:3b", f.err
}

func (f *fakeChat) Health(context.Context) dto.HealthStatus {
	if f.healthy {
		return dto.HealthStatus{Ok: true, OllamaUrl: "http://localhost:11434", Model: "qwen2.5:3b", Status: "connected"}
	}
	return dto.HealthStatus{Ok: false, OllamaUrl: "http://localhost:11434", Model: "qwen2.5:3b", Status: "disconnected", Error: "refused"}
}

func setup(t *testing.T, chat *fakeChat) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	global.Log = logrus.New()
	global.Log.SetOutput(io.Discard)
	service.Service.SetUserServiceGroup(user.ServiceGroup{ChatService: chat})

	r := gin.New()
	Start(r)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestChat_Success(t *testing.T) {
	chat := &fakeChat{reply: "Xin chào!"}
	r := setup(t, chat)

	w := do(r, http.MethodPost, "/api/chat", `{"message":"  Xin chào  "}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"Xin chào!"}`, w.Body.String())
	assert.Equal(t, "Xin chào", chat.got)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestChat_InvalidMessage(t *testing.T) {
	chat := &fakeChat{}
	r := setup(t, chat)

	for _, body := range []string{`{"message":42}`, `{}`, `{"message":"   "}`, `not json`, `{"message":null}`} {
		w := do(r, http.MethodPost, "/api/chat", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Vui lòng gửi message dạng chuỗi.", errorBody(t, w))
	}
	assert.Equal(t, 0, chat.calls)
}

func TestChat_ErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{llm.NewConnectivityError(errors.New("refused")), http.StatusServiceUnavailable, "Không thể kết nối tới máy chủ AI. Vui lòng thử lại sau."},
		{fmt.Errorf("wrapped: %w", llm.NewConnectivityError(errors.New("timeout"))), http.StatusServiceUnavailable, "Không thể kết nối tới máy chủ AI. Vui lòng thử lại sau."},
		{errors.New("Lỗi kết nối cơ sở dữ liệu"), http.StatusServiceUnavailable, "Đã xảy ra lỗi khi xử lý yêu cầu."},
		{llm.NewModelError(http.StatusNotFound, errors.New("model not found")), http.StatusInternalServerError, "Máy chủ AI trả về lỗi (HTTP 404)."},
		{user.ErrEmptyReply, http.StatusInternalServerError, "Không nhận được phản hồi từ trợ lý."},
		{fmt.Errorf("第二轮补全[t7wq2e]: %w", user.ErrEmptyReply), http.StatusInternalServerError, "Không nhận được phản hồi từ trợ lý."},
		{fmt.Errorf("wrapped: %w", llm.NewModelError(http.StatusBadGateway, errors.New("upstream"))), http.StatusInternalServerError, "Máy chủ AI trả về lỗi (HTTP 502)."},
		{errors.New("boom"), http.StatusInternalServerError, "Đã xảy ra lỗi khi xử lý yêu cầu."},
	}
	for _, c := range cases {
		r := setup(t, &fakeChat{err: c.err})
		w := do(r, http.MethodPost, "/api/chat", `{"message":"Xin chào"}`)
		assert.Equal(t, c.code, w.Code, c.err.Error())
		assert.Equal(t, c.msg, errorBody(t, w))
	}
}

func TestHealth(t *testing.T) {
	r := setup(t, &fakeChat{healthy: true})
	w := do(r, http.MethodGet, "/api/chat/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"ollama_url":"http://localhost:11434","model":"qwen2.5:3b","status":"connected"}`, w.Body.String())

	r = setup(t, &fakeChat{})
	w = do(r, http.MethodGet, "/api/chat/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"ok":false,"ollama_url":"http://localhost:11434","model":"qwen2.5:3b","status":"disconnected","error":"refused"}`, w.Body.String())
}

func TestChatTest(t *testing.T) {
	r := setup(t, &fakeChat{reply: "Chào bạn!"})
	w := do(r, http.MethodPost, "/api/chat/test", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"reply":"Chào bạn!","model":"qwen2.5:3b"}`, w.Body.String())
}

func TestNotFoundAndMetrics(t *testing.T) {
	r := setup(t, &fakeChat{})

	w := do(r, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Không tìm thấy", errorBody(t, w))

	w = do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "chatbot_http_requests_total")
}
