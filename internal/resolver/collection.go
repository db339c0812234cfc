package resolver

import (
	"encoding/json"
	"strconv"
)

const (
	seasonArchivesPageSize = 30
	seriesArchivesPageSize = 100
)

// archiveItem 是 archives 列表族共用的条目形态
type archiveItem struct {
	BVID     string `json:"bvid"`
	Title    string `json:"title"`
	Pic      string `json:"pic"`
	Duration int    `json:"duration"`
}

// seasonArchivesAdapter 拉取个人合集 / UGC 合集，
// 接口是 /x/polymer/space/seasons_archives_list
type seasonArchivesAdapter struct {
	client *Client
}

type seasonArchivesPayload struct {
	Archives []archiveItem `json:"archives"`
	Page     *struct {
		Total int `json:"total"`
	} `json:"page"`
	Meta *struct {
		Title string `json:"title"`
		Cover string `json:"cover"`
	} `json:"meta"`
}

func (a *seasonArchivesAdapter) fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error) {
	mid := ref.OwnerID
	if mid == "" {
		// 接口容忍 mid=0，原始实现对 URL 里拿不到 mid 的情况就是这么发的
		mid = "0"
	}
	params := map[string]string{
		"mid":          mid,
		"season_id":    ref.ID,
		"sort_reverse": "false",
		"page_num":     strconv.Itoa(cur.num),
		"page_size":    strconv.Itoa(seasonArchivesPageSize),
	}
	env, err := a.client.getEnvelope(a.client.apiBase+"/x/polymer/space/seasons_archives_list", params, credential, ref.Type, ref.ID)
	if err != nil {
		return fetchPage{}, err
	}

	var payload seasonArchivesPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fetchPage{}, newError(ErrUpstreamMalformed, PlatformBilibili, ref.Type, ref.ID, "undecodable season archives payload")
	}

	page := fetchPage{}
	if payload.Meta != nil {
		page.collTitle = payload.Meta.Title
		page.collCover = payload.Meta.Cover
	}
	if payload.Page != nil {
		page.total = payload.Page.Total
	}
	page.items = archiveDescriptors(payload.Archives, ref.ID)

	// 接口不给 has_more，按 总数 > 已见数量 推进
	if page.total > cur.num*seasonArchivesPageSize && len(page.items) > 0 {
		page.next = &pageCursor{num: cur.num + 1}
	}
	return page, nil
}

// seriesArchivesAdapter 拉取系列视频，接口是 /x/series/archives
type seriesArchivesAdapter struct {
	client *Client
}

type seriesArchivesPayload struct {
	Archives []archiveItem `json:"archives"`
	Page     *struct {
		Total int `json:"total"`
	} `json:"page"`
}

func (a *seriesArchivesAdapter) fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error) {
	mid := ref.OwnerID
	if mid == "" {
		mid = "0"
	}
	params := map[string]string{
		"mid":         mid,
		"series_id":   ref.ID,
		"pn":          strconv.Itoa(cur.num),
		"ps":          strconv.Itoa(seriesArchivesPageSize),
		"only_normal": "true",
		"sort":        "asc",
	}
	env, err := a.client.getEnvelope(a.client.apiBase+"/x/series/archives", params, credential, ref.Type, ref.ID)
	if err != nil {
		return fetchPage{}, err
	}

	var payload seriesArchivesPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fetchPage{}, newError(ErrUpstreamMalformed, PlatformBilibili, ref.Type, ref.ID, "undecodable series archives payload")
	}

	page := fetchPage{items: archiveDescriptors(payload.Archives, ref.ID)}
	if payload.Page != nil {
		page.total = payload.Page.Total
	}
	if page.total > cur.num*seriesArchivesPageSize && len(page.items) > 0 {
		page.next = &pageCursor{num: cur.num + 1}
	}
	return page, nil
}

func archiveDescriptors(archives []archiveItem, collectionID string) []VideoDescriptor {
	out := make([]VideoDescriptor, 0, len(archives))
	for _, ar := range archives {
		if ar.BVID == "" {
			continue
		}
		out = append(out, VideoDescriptor{
			Platform:           PlatformBilibili,
			VideoID:            ar.BVID,
			Title:              ar.Title,
			CoverURL:           ar.Pic,
			Duration:           ar.Duration,
			SourceCollectionID: collectionID,
		})
	}
	return out
}
