package resolver

import "strconv"

// Platform 是 URL 所属的视频平台
type Platform string

const (
	PlatformBilibili Platform = "bilibili"
	PlatformDouyin   Platform = "douyin"
	PlatformYouTube  Platform = "youtube"
	PlatformKuaishou Platform = "kuaishou"
)

// CollectionType 标识一个 URL 背后的多视频结构
type CollectionType string

const (
	CollectionFavorites     CollectionType = "favorites"       // 收藏夹
	CollectionPersonal      CollectionType = "collection"      // 个人合集
	CollectionSeries        CollectionType = "series"          // 系列视频
	CollectionWatchLater    CollectionType = "watch_later"     // 稍后再看
	CollectionBangumiSeason CollectionType = "bangumi_season"  // 番剧 ss
	CollectionBangumiMedia  CollectionType = "bangumi_media"   // 番剧 md
	CollectionMultiPart     CollectionType = "multi_part"      // 多分P
	CollectionUGCSeason     CollectionType = "ugc_season"      // UGC 合集
	CollectionUserUploads   CollectionType = "user_uploads"    // 用户投稿
	CollectionChannel       CollectionType = "channel"         // 频道首页
)

// VideoDescriptor 是一条可下载视频的规范化描述。
// 身份键是 (platform, video_id, part_index)，生成后不再修改。
type VideoDescriptor struct {
	Platform           Platform       `json:"platform"`
	VideoID            string         `json:"video_id"`
	Title              string         `json:"title"`
	CoverURL           string         `json:"cover_url,omitempty"`
	Duration           int            `json:"duration,omitempty"` // 秒
	PartIndex          int            `json:"part_index,omitempty"` // 0 表示非分P
	SourceCollectionID string         `json:"source_collection_id,omitempty"`
}

// Key 返回去重用的身份键
func (d VideoDescriptor) Key() string {
	key := string(d.Platform) + "/" + d.VideoID
	if d.PartIndex > 0 {
		key += "/p" + strconv.Itoa(d.PartIndex)
	}
	return key
}

// URL 重建视频的规范访问地址
func (d VideoDescriptor) URL() string {
	switch d.Platform {
	case PlatformBilibili:
		u := "https://www.bilibili.com/video/" + d.VideoID
		if d.PartIndex > 0 {
			u += "?p=" + strconv.Itoa(d.PartIndex)
		}
		return u
	case PlatformDouyin:
		return "https://www.douyin.com/video/" + d.VideoID
	case PlatformYouTube:
		return "https://www.youtube.com/watch?v=" + d.VideoID
	}
	return d.VideoID
}

// CollectionRef 指向一个可枚举的合集
type CollectionRef struct {
	Platform     Platform       `json:"platform"`
	Type         CollectionType `json:"type"`
	ID           string         `json:"id"`
	OwnerID      string         `json:"owner_id,omitempty"` // 部分接口需要 mid
	RequiresAuth bool           `json:"requires_auth"`
}

// pageCursor 翻页游标，B站的列表接口都是页号语义
type pageCursor struct {
	num int
}

// fetchPage 是适配器返回的规范化单页
type fetchPage struct {
	items []VideoDescriptor
	next  *pageCursor // nil 表示没有下一页
	total int         // 0 表示接口未给出总数

	// 合集级元数据，用于回填条目缺失字段
	collTitle string
	collCover string
}

// ResolutionResult 是一次解析的最终产物
type ResolutionResult struct {
	Collection *CollectionRef    `json:"collection,omitempty"` // nil 表示独立单视频
	Videos     []VideoDescriptor `json:"videos"`
	Truncated  bool              `json:"truncated"`
}
