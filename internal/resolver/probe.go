package resolver

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// 标题里出现这些词时按系列处理。启发式，接受误判，
// 换词表只动这一个文件。
var seriesKeywords = []string{
	"合集", "系列", "第一集", "第二集", "P1", "P2", "上篇", "下篇",
	"（一）", "（二）", "【合集】", "【系列】", "全集", "连载", "番外",
	"EP", "ep",
}

// relatedSiblingFloor 相关视频超过这个数量才认为可能是系列
const relatedSiblingFloor = 3

func titleLooksSerial(title string) bool {
	for _, kw := range seriesKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

// videoProbe 是单视频 URL 的合集判定结果
type videoProbe struct {
	ref       *CollectionRef    // nil 表示独立单视频
	parts     []VideoDescriptor // 多分P时直接给出展开结果
	seedTitle string            // 系列判定时的种子标题，用于过滤投稿
}

// probeVideo 依固定顺序检查单视频是否属于更大的结构，命中即停：
// UGC 合集 → 多分P → 番剧 → 标题关键词 → 相关视频。
// 信号冲突时以这里的顺序为准。
func (r *Resolver) probeVideo(info *viewInfo, credential string) videoProbe {
	mid := strconv.FormatInt(info.Owner.Mid, 10)

	if info.UgcSeason != nil && info.UgcSeason.ID > 0 {
		owner := mid
		if info.UgcSeason.Mid > 0 {
			owner = strconv.FormatInt(info.UgcSeason.Mid, 10)
		}
		return videoProbe{ref: &CollectionRef{
			Platform: PlatformBilibili,
			Type:     CollectionUGCSeason,
			ID:       strconv.FormatInt(info.UgcSeason.ID, 10),
			OwnerID:  owner,
		}}
	}

	if len(info.Pages) > 1 {
		return videoProbe{
			ref: &CollectionRef{
				Platform: PlatformBilibili,
				Type:     CollectionMultiPart,
				ID:       info.canonicalID(),
				OwnerID:  mid,
			},
			parts: info.partDescriptors(),
		}
	}

	if info.Season != nil && info.Season.SeasonID > 0 {
		return videoProbe{ref: &CollectionRef{
			Platform: PlatformBilibili,
			Type:     CollectionBangumiSeason,
			ID:       strconv.FormatInt(info.Season.SeasonID, 10),
		}}
	}

	if titleLooksSerial(info.Title) {
		return videoProbe{
			ref: &CollectionRef{
				Platform: PlatformBilibili,
				Type:     CollectionSeries,
				ID:       mid,
				OwnerID:  mid,
			},
			seedTitle: info.Title,
		}
	}

	// 置信度最低的信号放最后，还要多打一次接口
	if r.relatedCount(info.canonicalID(), credential) > relatedSiblingFloor {
		return videoProbe{
			ref: &CollectionRef{
				Platform: PlatformBilibili,
				Type:     CollectionSeries,
				ID:       mid,
				OwnerID:  mid,
			},
			seedTitle: info.Title,
		}
	}

	return videoProbe{}
}

// relatedCount 数一下相关视频有多少条。detail 接口的形态松散多变，
// 这里只关心 Related 数组长度，用 gjson 探一下就够了；任何失败都当 0。
func (r *Resolver) relatedCount(videoID, credential string) int {
	params := map[string]string{}
	if strings.HasPrefix(videoID, "av") {
		params["aid"] = strings.TrimPrefix(videoID, "av")
	} else {
		params["bvid"] = videoID
	}
	body, err := r.client.get(r.client.apiBase+"/x/web-interface/view/detail", params, credential)
	if err != nil {
		return 0
	}
	if gjson.GetBytes(body, "code").Int() != 0 {
		return 0
	}
	return len(gjson.GetBytes(body, "data.Related").Array())
}

// seriesSiblingsAdapter 把 UP 主投稿过滤成疑似同系列的视频。
// 过滤标准沿用原始实现：与种子标题的词重合度，或自带系列关键词。
type seriesSiblingsAdapter struct {
	inner     *spaceUploadsAdapter
	seedTitle string
}

const siblingSimilarityFloor = 0.3

func (a *seriesSiblingsAdapter) fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error) {
	page, err := a.inner.fetchPage(ref, cur, credential)
	if err != nil {
		return fetchPage{}, err
	}

	kept := page.items[:0]
	for _, item := range page.items {
		if titleSimilarity(a.seedTitle, item.Title) > siblingSimilarityFloor || titleLooksSerial(item.Title) {
			kept = append(kept, item)
		}
	}
	page.items = kept
	// total 是全部投稿数，对过滤后的列表没有意义
	page.total = 0
	return page, nil
}

// titleSimilarity 计算两个标题按空白切词后的 Jaccard 重合度
func titleSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		out[tok] = struct{}{}
	}
	return out
}
