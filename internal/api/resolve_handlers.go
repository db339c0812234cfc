package api

import (
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fangguanya/BiliNote/internal/config"
	"github.com/fangguanya/BiliNote/internal/db"
	"github.com/fangguanya/BiliNote/internal/event"
	"github.com/fangguanya/BiliNote/internal/model"
	"github.com/fangguanya/BiliNote/internal/resolver"
)

type resolveRequest struct {
	URL       string `json:"url" binding:"required"`
	MaxVideos int    `json:"max_videos"`
}

type batchResolveRequest struct {
	URLs      []string `json:"urls" binding:"required"`
	MaxVideos int      `json:"max_videos"`
}

// apiVideo 在描述符之上补一个可直接打开的 url 字段
type apiVideo struct {
	resolver.VideoDescriptor
	URL string `json:"url"`
}

type resolveResponse struct {
	RequestID  string                  `json:"request_id"`
	Collection *resolver.CollectionRef `json:"collection,omitempty"`
	Videos     []apiVideo              `json:"videos"`
	Truncated  bool                    `json:"truncated"`
}

const maxBatchURLs = 10

// clampMaxVideos 把调用方请求的数量收敛到配置允许的区间
func clampMaxVideos(requested int) int {
	cfg := config.AppConfig.Resolver
	if requested <= 0 {
		return cfg.DefaultMaxVideos
	}
	if cfg.MaxMaxVideos > 0 && requested > cfg.MaxMaxVideos {
		return cfg.MaxMaxVideos
	}
	return requested
}

func ResolveHandler(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := doResolve(req.URL, clampMaxVideos(req.MaxVideos))
	if err != nil {
		status, body := errorBody(req.URL, err)
		c.JSON(status, body)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BatchResolveHandler 并发解析互不相关的 URL，单条失败不影响其余
func BatchResolveHandler(c *gin.Context) {
	var req batchResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.URLs) > maxBatchURLs {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many urls", "max": maxBatchURLs})
		return
	}

	maxVideos := clampMaxVideos(req.MaxVideos)

	type entry struct {
		URL    string           `json:"url"`
		Result *resolveResponse `json:"result,omitempty"`
		Error  gin.H            `json:"error,omitempty"`
	}
	entries := make([]entry, len(req.URLs))

	var mu sync.Mutex
	var g errgroup.Group
	for i, u := range req.URLs {
		i, u := i, u
		g.Go(func() error {
			resp, err := doResolve(u, maxVideos)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				_, body := errorBody(u, err)
				entries[i] = entry{URL: u, Error: body}
			} else {
				entries[i] = entry{URL: u, Result: resp}
			}
			return nil // 失败隔离在条目内，不让 errgroup 中断其他 URL
		})
	}
	_ = g.Wait()

	c.JSON(http.StatusOK, gin.H{"results": entries})
}

func ResolveHistoryHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 20
	}

	var records []model.ResolveRecord
	if err := db.DB.Order("created_at desc").Limit(limit).Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// doResolve 跑一次解析并发布历史事件
func doResolve(url string, maxVideos int) (*resolveResponse, error) {
	requestID := uuid.NewString()

	result, err := res.Resolve(url, maxVideos, cookies.Lookup())
	if err != nil {
		rec := model.ResolveRecord{RequestID: requestID, URL: url, ErrorKind: string(resolver.KindOf(err))}
		if re, ok := err.(*resolver.Error); ok {
			rec.Platform = string(re.Platform)
			rec.CollectionType = string(re.CollectionType)
			rec.CollectionID = re.ID
		}
		event.GlobalBus.Publish(event.EventResolveFailed, rec)
		return nil, err
	}

	resp := &resolveResponse{
		RequestID: requestID,
		Truncated: result.Truncated,
		Videos:    make([]apiVideo, 0, len(result.Videos)),
	}
	rec := model.ResolveRecord{
		RequestID:  requestID,
		URL:        url,
		VideoCount: len(result.Videos),
		Truncated:  result.Truncated,
	}
	if len(result.Videos) > 0 {
		rec.Platform = string(result.Videos[0].Platform)
	}
	if result.Collection != nil {
		resp.Collection = result.Collection
		rec.Platform = string(result.Collection.Platform)
		rec.CollectionType = string(result.Collection.Type)
		rec.CollectionID = result.Collection.ID
	}
	for _, v := range result.Videos {
		resp.Videos = append(resp.Videos, apiVideo{VideoDescriptor: v, URL: v.URL()})
	}

	event.GlobalBus.Publish(event.EventResolveCompleted, rec)
	return resp, nil
}

// errorBody 把解析错误映射成 HTTP 状态和对外安全的错误体。
// 上游原始报文不透传
func errorBody(url string, err error) (int, gin.H) {
	kind := resolver.KindOf(err)
	body := gin.H{"error": string(kind)}
	if re, ok := err.(*resolver.Error); ok {
		if re.Platform != "" {
			body["platform"] = string(re.Platform)
		}
		if re.CollectionType != "" {
			body["collection_type"] = string(re.CollectionType)
		}
		if re.ID != "" {
			body["id"] = re.ID
		}
		body["retryable"] = re.Retryable()
	}

	var status int
	switch kind {
	case resolver.ErrUnsupportedPlatform, resolver.ErrUnsupportedURLShape:
		status = http.StatusBadRequest
	case resolver.ErrAuthRequired:
		status = http.StatusUnauthorized
	case resolver.ErrNotFound:
		status = http.StatusNotFound
	case resolver.ErrRateLimited:
		status = http.StatusTooManyRequests
	case resolver.ErrTimeout:
		status = http.StatusGatewayTimeout
	case resolver.ErrUpstreamMalformed:
		status = http.StatusBadGateway
	default:
		log.Printf("resolve %s failed with unclassified error: %v", url, err)
		status = http.StatusInternalServerError
		body["error"] = "internal"
	}
	return status, body
}
