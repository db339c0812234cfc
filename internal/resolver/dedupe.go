package resolver

import (
	"github.com/fangguanya/BiliNote/internal/parser"
)

// accumulator 边翻页边去重：身份键首次出现的条目保留原位，
// 后续重复直接丢弃
type accumulator struct {
	seen  map[string]struct{}
	items []VideoDescriptor

	collTitle string
	collCover string
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]struct{})}
}

// absorb 合并一页，返回实际新增条数
func (a *accumulator) absorb(page fetchPage) int {
	if a.collTitle == "" {
		a.collTitle = page.collTitle
	}
	if a.collCover == "" {
		a.collCover = page.collCover
	}

	added := 0
	for _, item := range page.items {
		key := item.Key()
		if _, dup := a.seen[key]; dup {
			continue
		}
		a.seen[key] = struct{}{}
		a.items = append(a.items, item)
		added++
	}
	return added
}

// finish 截断到 maxVideos 并用合集级元数据回填缺失字段
func (a *accumulator) finish(maxVideos int) []VideoDescriptor {
	videos := a.items
	if len(videos) > maxVideos {
		videos = videos[:maxVideos]
	}
	backfill(videos, a.collTitle, a.collCover)
	return videos
}

// backfill 给缺标题/封面的条目补上合集级的值。合集标题先清掉
// 【合集】、集数编号之类的噪音再用。
func backfill(items []VideoDescriptor, collTitle, collCover string) {
	cleaned := ""
	if collTitle != "" {
		cleaned = parser.CleanCollectionTitle(collTitle)
	}
	for i := range items {
		if items[i].Title == "" && cleaned != "" {
			items[i].Title = cleaned
		}
		if items[i].CoverURL == "" && collCover != "" {
			items[i].CoverURL = collCover
		}
	}
}
