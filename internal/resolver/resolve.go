package resolver

import (
	"strings"
	"time"
)

// CredentialLookup 返回某平台已存的登录凭证，不存在时 ok 为 false。
// 每次解析只读一次，不随翻页重复读取。
type CredentialLookup func(platform string) (string, bool)

type Options struct {
	Timeout     time.Duration // 单次上游请求超时
	PageCallCap int           // 单次解析的翻页硬上限
}

// Resolver 把一个视频/合集 URL 解析成有序去重的视频描述列表。
// 无共享可变状态，多个 URL 可以并发解析。
type Resolver struct {
	client      *Client
	pageCallCap int
}

func New(opts Options) *Resolver {
	pageCap := opts.PageCallCap
	if pageCap <= 0 {
		pageCap = 50
	}
	return &Resolver{
		client:      NewClient(opts.Timeout),
		pageCallCap: pageCap,
	}
}

// Client 暴露底层客户端，仅供测试替换接口地址
func (r *Resolver) Client() *Client {
	return r.client
}

// Resolve 是唯一的对外入口。
// maxVideos 是结果条数上限，lookup 为 nil 时全程匿名。
func (r *Resolver) Resolve(rawURL string, maxVideos int, lookup CredentialLookup) (*ResolutionResult, error) {
	if maxVideos <= 0 {
		maxVideos = 50
	}

	if strings.Contains(rawURL, "b23.tv") {
		expanded, err := r.client.ExpandShortURL(rawURL)
		if err != nil {
			return nil, err
		}
		rawURL = expanded
	}

	cls, err := classify(rawURL)
	if err != nil {
		return nil, err
	}

	credential := ""
	if lookup != nil {
		credential, _ = lookup(string(cls.Platform))
	}

	if cls.Collection != nil {
		return r.resolveCollection(*cls.Collection, credential, maxVideos)
	}
	return r.resolveVideo(cls, credential, maxVideos)
}

func (r *Resolver) resolveCollection(ref CollectionRef, credential string, maxVideos int) (*ResolutionResult, error) {
	// 强制登录的合集在发任何请求前就短路
	if ref.RequiresAuth && credential == "" {
		return nil, newError(ErrAuthRequired, ref.Platform, ref.Type, ref.ID, "no stored credential for platform")
	}
	if ref.Platform != PlatformBilibili {
		return nil, newError(ErrUnsupportedURLShape, ref.Platform, ref.Type, ref.ID, "collection enumeration only implemented for bilibili")
	}

	f, ok := r.fetcherFor(ref.Type)
	if !ok {
		return nil, newError(ErrUnsupportedURLShape, ref.Platform, ref.Type, ref.ID, "no adapter for collection type")
	}
	return r.drive(f, ref, credential, maxVideos)
}

func (r *Resolver) resolveVideo(cls classification, credential string, maxVideos int) (*ResolutionResult, error) {
	if cls.Platform != PlatformBilibili {
		// 其他平台没有可用的详情接口族，按独立单视频返回
		return &ResolutionResult{
			Videos: []VideoDescriptor{{Platform: cls.Platform, VideoID: cls.VideoID}},
		}, nil
	}

	info, err := r.client.VideoInfo(cls.VideoID, credential)
	if err != nil {
		return nil, err
	}

	probe := r.probeVideo(info, credential)
	if probe.ref == nil {
		// 所有检查都没命中，保守地按单视频处理
		return &ResolutionResult{Videos: []VideoDescriptor{info.descriptor()}}, nil
	}

	switch probe.ref.Type {
	case CollectionMultiPart:
		// 分P数据已内嵌在 view 响应里，不再发展开请求
		acc := newAccumulator()
		acc.absorb(fetchPage{items: probe.parts, collTitle: info.Title, collCover: info.Pic})
		truncated := len(acc.items) > maxVideos
		return &ResolutionResult{
			Collection: probe.ref,
			Videos:     acc.finish(maxVideos),
			Truncated:  truncated,
		}, nil

	case CollectionSeries:
		f := &seriesSiblingsAdapter{
			inner:     &spaceUploadsAdapter{client: r.client},
			seedTitle: probe.seedTitle,
		}
		res, err := r.drive(f, *probe.ref, credential, maxVideos)
		if err != nil {
			return nil, err
		}
		if len(res.Videos) < 2 {
			// 过滤后凑不成系列，回落为单视频
			return &ResolutionResult{Videos: []VideoDescriptor{info.descriptor()}}, nil
		}
		return res, nil

	default:
		f, ok := r.fetcherFor(probe.ref.Type)
		if !ok {
			return &ResolutionResult{Videos: []VideoDescriptor{info.descriptor()}}, nil
		}
		return r.drive(f, *probe.ref, credential, maxVideos)
	}
}
