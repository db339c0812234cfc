package resolver

import (
	"encoding/json"
	"strconv"
	"strings"
)

// bangumiSectionAdapter 拉取番剧某一季的全部剧集。
// /pgc/web/season/section 一次返回整季，没有翻页。
type bangumiSectionAdapter struct {
	client *Client
}

type bangumiEpisode struct {
	BVID      string `json:"bvid"`
	AID       int64  `json:"aid"`
	Title     string `json:"title"`      // 通常是集数序号
	LongTitle string `json:"long_title"` // 剧集名
	Cover     string `json:"cover"`
}

type bangumiSection struct {
	Title    string           `json:"title"`
	Episodes []bangumiEpisode `json:"episodes"`
}

type bangumiSectionPayload struct {
	MainSection *bangumiSection  `json:"main_section"`
	Section     []bangumiSection `json:"section"`
}

func (a *bangumiSectionAdapter) fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error) {
	params := map[string]string{"season_id": ref.ID}
	env, err := a.client.getEnvelope(a.client.apiBase+"/pgc/web/season/section", params, credential, ref.Type, ref.ID)
	if err != nil {
		return fetchPage{}, err
	}

	var payload bangumiSectionPayload
	if err := json.Unmarshal(env.Result, &payload); err != nil {
		return fetchPage{}, newError(ErrUpstreamMalformed, PlatformBilibili, ref.Type, ref.ID, "undecodable bangumi section payload")
	}

	// 正片在 main_section，花絮等附加内容在 section 里
	sections := make([]bangumiSection, 0, len(payload.Section)+1)
	if payload.MainSection != nil {
		sections = append(sections, *payload.MainSection)
	}
	sections = append(sections, payload.Section...)

	page := fetchPage{}
	for _, sec := range sections {
		for _, ep := range sec.Episodes {
			id := ep.BVID
			if id == "" && ep.AID > 0 {
				id = "av" + strconv.FormatInt(ep.AID, 10)
			}
			if id == "" {
				continue
			}
			title := strings.TrimSpace(strings.TrimSpace(ep.Title) + " " + strings.TrimSpace(ep.LongTitle))
			page.items = append(page.items, VideoDescriptor{
				Platform:           PlatformBilibili,
				VideoID:            id,
				Title:              title,
				CoverURL:           ep.Cover,
				SourceCollectionID: ref.ID,
			})
		}
	}
	page.total = len(page.items)
	return page, nil
}

// bangumiMediaAdapter 是两阶段适配器：先用 md 号换出 season_id，
// 再委托给 bangumiSectionAdapter。第一阶段失败直接短路。
type bangumiMediaAdapter struct {
	client *Client
}

type mediaReviewPayload struct {
	Media *struct {
		SeasonID int64  `json:"season_id"`
		Title    string `json:"title"`
	} `json:"media"`
}

func (a *bangumiMediaAdapter) fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error) {
	params := map[string]string{"media_id": ref.ID}
	env, err := a.client.getEnvelope(a.client.apiBase+"/pgc/review/user", params, credential, ref.Type, ref.ID)
	if err != nil {
		return fetchPage{}, err
	}

	var payload mediaReviewPayload
	if err := json.Unmarshal(env.Result, &payload); err != nil {
		return fetchPage{}, newError(ErrUpstreamMalformed, PlatformBilibili, ref.Type, ref.ID, "undecodable media review payload")
	}
	if payload.Media == nil || payload.Media.SeasonID == 0 {
		return fetchPage{}, newError(ErrNotFound, PlatformBilibili, ref.Type, ref.ID, "media has no season id")
	}

	seasonRef := ref
	seasonRef.Type = CollectionBangumiSeason
	seasonRef.ID = strconv.FormatInt(payload.Media.SeasonID, 10)

	section := &bangumiSectionAdapter{client: a.client}
	page, err := section.fetchPage(seasonRef, cur, credential)
	if err != nil {
		return fetchPage{}, err
	}
	if page.collTitle == "" {
		page.collTitle = payload.Media.Title
	}
	return page, nil
}
