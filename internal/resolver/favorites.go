package resolver

import (
	"encoding/json"
	"strconv"
)

const favoritesPageSize = 20

// favoritesAdapter 拉取收藏夹内容。
// 公共收藏夹匿名可见，私密收藏夹由上游 -403 映射成 AUTH_REQUIRED。
type favoritesAdapter struct {
	client *Client
}

type favoritesPayload struct {
	Info *struct {
		Title      string `json:"title"`
		Cover      string `json:"cover"`
		MediaCount int    `json:"media_count"`
	} `json:"info"`
	Medias []struct {
		BVID     string `json:"bvid"`
		Title    string `json:"title"`
		Cover    string `json:"cover"`
		Duration int    `json:"duration"`
	} `json:"medias"`
	HasMore bool `json:"has_more"`
}

func (a *favoritesAdapter) fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error) {
	params := map[string]string{
		"media_id": ref.ID,
		"pn":       strconv.Itoa(cur.num),
		"ps":       strconv.Itoa(favoritesPageSize),
		"order":    "mtime",
		"type":     "0",
		"tid":      "0",
	}
	env, err := a.client.getEnvelope(a.client.apiBase+"/x/v3/fav/resource/list", params, credential, ref.Type, ref.ID)
	if err != nil {
		return fetchPage{}, err
	}

	var payload favoritesPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fetchPage{}, newError(ErrUpstreamMalformed, PlatformBilibili, ref.Type, ref.ID, "undecodable favorites payload")
	}

	page := fetchPage{}
	if payload.Info != nil {
		page.collTitle = payload.Info.Title
		page.collCover = payload.Info.Cover
		page.total = payload.Info.MediaCount
	}
	for _, m := range payload.Medias {
		if m.BVID == "" {
			continue
		}
		page.items = append(page.items, VideoDescriptor{
			Platform:           PlatformBilibili,
			VideoID:            m.BVID,
			Title:              m.Title,
			CoverURL:           m.Cover,
			Duration:           m.Duration,
			SourceCollectionID: ref.ID,
		})
	}
	if payload.HasMore {
		page.next = &pageCursor{num: cur.num + 1}
	}
	return page, nil
}
