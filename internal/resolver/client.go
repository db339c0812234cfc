package resolver

import (
	"encoding/json"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultAPIBase   = "https://api.bilibili.com"
	defaultSpaceBase = "https://space.bilibili.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	refererBilibili  = "https://www.bilibili.com/"
)

// Client 封装对B站各接口族的访问。凭证由每次调用显式传入，
// Client 自身不持有任何登录态。
type Client struct {
	http      *resty.Client
	apiBase   string
	spaceBase string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:      resty.New().SetTimeout(timeout),
		apiBase:   defaultAPIBase,
		spaceBase: defaultSpaceBase,
	}
}

// SetAPIBase 覆盖接口地址，单测用 httptest 服务替身
func (c *Client) SetAPIBase(base string) {
	c.apiBase = strings.TrimRight(base, "/")
}

func (c *Client) SetSpaceBase(base string) {
	c.spaceBase = strings.TrimRight(base, "/")
}

// envelope 是B站接口的统一外壳，data 与 result 两种载荷字段并存
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Result  json.RawMessage `json:"result"`
}

// get 发起一次带平台头的 GET，凭证存在时附到 Cookie 头上
func (c *Client) get(url string, params map[string]string, credential string) ([]byte, error) {
	req := c.http.R().
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Referer", refererBilibili)
	if credential != "" {
		req.SetHeader("Cookie", credential)
	}
	if params != nil {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, transportError(err)
	}
	if resp.IsError() {
		// 网关层的限流用 HTTP 状态表达，接口层的用 code 字段
		if resp.StatusCode() == 412 || resp.StatusCode() == 429 {
			return nil, &Error{Kind: ErrRateLimited, Platform: PlatformBilibili, Message: "upstream throttled the request"}
		}
		return nil, &Error{Kind: ErrUpstreamMalformed, Platform: PlatformBilibili, Message: "unexpected http status " + resp.Status()}
	}
	return resp.Body(), nil
}

// getEnvelope 请求并拆开统一外壳，code 非 0 时映射到错误分类
func (c *Client) getEnvelope(url string, params map[string]string, credential string, ctype CollectionType, id string) (*envelope, error) {
	body, err := c.get(url, params, credential)
	if err != nil {
		decorate(err, ctype, id)
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, newError(ErrUpstreamMalformed, PlatformBilibili, ctype, id, "undecodable response body")
	}
	if env.Code != 0 {
		return nil, newError(mapCode(env.Code), PlatformBilibili, ctype, id, "upstream code %d", env.Code)
	}
	return &env, nil
}

// mapCode 把B站业务错误码折叠到解析器的错误分类
func mapCode(code int) ErrorKind {
	switch code {
	case -101, -102, -403, 62002, 62012, 90058:
		// 未登录 / 账号异常 / 访问权限不足 / 稿件仅 UP 主可见
		return ErrAuthRequired
	case -404, 62404, 11010, 7201006:
		return ErrNotFound
	case -412, -352, -509, -799:
		// 风控拦截与请求过频都按限流上报，由调用方决定何时重试
		return ErrRateLimited
	default:
		return ErrUpstreamMalformed
	}
}

// transportError 区分超时与其他传输失败。两者对调用方都是可重试的。
func transportError(err error) *Error {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &Error{Kind: ErrTimeout, Platform: PlatformBilibili, Message: "request timed out"}
	}
	if strings.Contains(err.Error(), "deadline exceeded") {
		return &Error{Kind: ErrTimeout, Platform: PlatformBilibili, Message: "request timed out"}
	}
	return &Error{Kind: ErrRateLimited, Platform: PlatformBilibili, Message: "transport failure"}
}

// decorate 补全错误上的合集上下文，保持已有字段不动
func decorate(err error, ctype CollectionType, id string) {
	var re *Error
	if errors.As(err, &re) {
		if re.CollectionType == "" {
			re.CollectionType = ctype
		}
		if re.ID == "" {
			re.ID = id
		}
	}
}

// ExpandShortURL 把 b23.tv 短链展开成真实地址。
// 关闭自动重定向，从 Location 头拿目标。
func (c *Client) ExpandShortURL(shortURL string) (string, error) {
	client := resty.New().
		SetTimeout(c.http.GetClient().Timeout).
		SetRedirectPolicy(resty.NoRedirectPolicy())
	resp, err := client.R().
		SetHeader("User-Agent", defaultUserAgent).
		Get(shortURL)
	if err != nil && !errors.Is(err, resty.ErrAutoRedirectDisabled) {
		return "", transportError(err)
	}

	location, err := resp.RawResponse.Location()
	if err != nil {
		return "", newError(ErrUnsupportedURLShape, PlatformBilibili, "", shortURL, "short link did not redirect")
	}
	return location.String(), nil
}
