package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fangguanya/BiliNote/internal/config"
	"github.com/fangguanya/BiliNote/internal/cookie"
	"github.com/fangguanya/BiliNote/internal/db"
	"github.com/fangguanya/BiliNote/internal/resolver"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if err := config.LoadConfig(""); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	db.InitDB(filepath.Join(t.TempDir(), "test.db"))

	r := gin.New()
	InitRoutes(r, resolver.New(resolver.Options{Timeout: 2 * time.Second}), cookie.NewManager(db.DB))
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClampMaxVideos(t *testing.T) {
	if err := config.LoadConfig(""); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	cases := []struct {
		requested int
		want      int
	}{
		{0, 50},    // 默认值
		{-5, 50},   // 非法值回落默认
		{30, 30},   // 正常范围原样通过
		{999, 200}, // 超过上限收敛
	}
	for _, c := range cases {
		if got := clampMaxVideos(c.requested); got != c.want {
			t.Errorf("clampMaxVideos(%d) = %d, expected %d", c.requested, got, c.want)
		}
	}
}

func TestErrorBody_StatusMapping(t *testing.T) {
	cases := []struct {
		kind   resolver.ErrorKind
		status int
	}{
		{resolver.ErrUnsupportedPlatform, http.StatusBadRequest},
		{resolver.ErrUnsupportedURLShape, http.StatusBadRequest},
		{resolver.ErrAuthRequired, http.StatusUnauthorized},
		{resolver.ErrNotFound, http.StatusNotFound},
		{resolver.ErrRateLimited, http.StatusTooManyRequests},
		{resolver.ErrTimeout, http.StatusGatewayTimeout},
		{resolver.ErrUpstreamMalformed, http.StatusBadGateway},
	}
	for _, c := range cases {
		err := &resolver.Error{Kind: c.kind, Platform: resolver.PlatformBilibili}
		status, body := errorBody("http://x", err)
		if status != c.status {
			t.Errorf("errorBody(%s) status = %d, expected %d", c.kind, status, c.status)
		}
		if body["error"] != string(c.kind) {
			t.Errorf("errorBody(%s) error field = %v", c.kind, body["error"])
		}
	}
}

func TestCookieEndpoints_RoundTrip(t *testing.T) {
	r := newTestEngine(t)

	w := doRequest(r, http.MethodPut, "/api/cookie/bilibili", `{"cookie":"SESSDATA=abc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT cookie status = %d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(r, http.MethodGet, "/api/cookie/bilibili", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET cookie status = %d", w.Code)
	}
	var status struct {
		Platform string `json:"platform"`
		Exists   bool   `json:"exists"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("undecodable status body: %v", err)
	}
	if !status.Exists {
		t.Fatal("cookie not reported after save")
	}
	// 状态接口绝不回显 Cookie 内容
	if strings.Contains(w.Body.String(), "SESSDATA") {
		t.Fatalf("cookie value leaked: %s", w.Body.String())
	}

	w = doRequest(r, http.MethodDelete, "/api/cookie/bilibili", "")
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE cookie status = %d", w.Code)
	}
	w = doRequest(r, http.MethodGet, "/api/cookie/bilibili", "")
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("undecodable status body: %v", err)
	}
	if status.Exists {
		t.Fatal("cookie still reported after delete")
	}
}

func TestSetCookie_RequiresBody(t *testing.T) {
	r := newTestEngine(t)

	if w := doRequest(r, http.MethodPut, "/api/cookie/bilibili", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("empty body accepted: status = %d", w.Code)
	}
	if w := doRequest(r, http.MethodPut, "/api/cookie/bilibili", `{"cookie":"   "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("blank cookie accepted: status = %d", w.Code)
	}
}

func TestResolveHandler_BadRequests(t *testing.T) {
	r := newTestEngine(t)

	if w := doRequest(r, http.MethodPost, "/api/resolve", `{"max_videos":5}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing url accepted: status = %d", w.Code)
	}

	w := doRequest(r, http.MethodPost, "/api/resolve", `{"url":"https://example.com/watch/1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unsupported platform status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), string(resolver.ErrUnsupportedPlatform)) {
		t.Fatalf("body missing error kind: %s", w.Body.String())
	}
}

func TestBatchResolve_Limits(t *testing.T) {
	r := newTestEngine(t)

	urls := make([]string, maxBatchURLs+1)
	for i := range urls {
		urls[i] = "https://example.com/watch/1"
	}
	body, _ := json.Marshal(map[string]any{"urls": urls})
	if w := doRequest(r, http.MethodPost, "/api/resolve/batch", string(body)); w.Code != http.StatusBadRequest {
		t.Fatalf("oversized batch accepted: status = %d", w.Code)
	}

	if w := doRequest(r, http.MethodPost, "/api/resolve/batch", `{"urls":[]}`); w.Code != http.StatusBadRequest {
		t.Fatalf("empty batch accepted: status = %d", w.Code)
	}
}

func TestBatchResolve_IsolatesFailures(t *testing.T) {
	r := newTestEngine(t)

	// 两条都不可解析，但批量接口整体仍返回 200，错误记在条目里
	w := doRequest(r, http.MethodPost, "/api/resolve/batch",
		`{"urls":["https://example.com/watch/1","https://www.bilibili.com/read/cv1"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("batch status = %d", w.Code)
	}
	var resp struct {
		Results []struct {
			URL   string         `json:"url"`
			Error map[string]any `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("undecodable batch body: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, expected 2", len(resp.Results))
	}
	if resp.Results[0].Error["error"] != string(resolver.ErrUnsupportedPlatform) {
		t.Fatalf("first entry error = %v", resp.Results[0].Error)
	}
	if resp.Results[1].Error["error"] != string(resolver.ErrUnsupportedURLShape) {
		t.Fatalf("second entry error = %v", resp.Results[1].Error)
	}
}

func TestResolveHistory_Empty(t *testing.T) {
	r := newTestEngine(t)

	w := doRequest(r, http.MethodGet, "/api/resolve/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d body=%s", w.Code, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t)
	if w := doRequest(r, http.MethodGet, "/api/health", ""); w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
}
