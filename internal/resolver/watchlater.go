package resolver

import (
	"encoding/json"
	"strconv"
)

const watchLaterPageSize = 20

// watchLaterAdapter 拉取稍后再看队列。列表绑定账号，匿名调用没有意义，
// 缺凭证时在驱动层就被 AUTH_REQUIRED 短路，这里只处理已带凭证的请求。
type watchLaterAdapter struct {
	client *Client
}

type watchLaterPayload struct {
	Count int `json:"count"`
	List  []struct {
		BVID     string `json:"bvid"`
		Title    string `json:"title"`
		Pic      string `json:"pic"`
		Duration int    `json:"duration"`
	} `json:"list"`
}

func (a *watchLaterAdapter) fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error) {
	params := map[string]string{
		"pn": strconv.Itoa(cur.num),
		"ps": strconv.Itoa(watchLaterPageSize),
	}
	env, err := a.client.getEnvelope(a.client.apiBase+"/x/v2/history/toview", params, credential, ref.Type, ref.ID)
	if err != nil {
		return fetchPage{}, err
	}

	var payload watchLaterPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fetchPage{}, newError(ErrUpstreamMalformed, PlatformBilibili, ref.Type, ref.ID, "undecodable watch later payload")
	}

	page := fetchPage{total: payload.Count}
	for _, v := range payload.List {
		if v.BVID == "" {
			continue
		}
		page.items = append(page.items, VideoDescriptor{
			Platform:           PlatformBilibili,
			VideoID:            v.BVID,
			Title:              v.Title,
			CoverURL:           v.Pic,
			Duration:           v.Duration,
			SourceCollectionID: ref.ID,
		})
	}
	if payload.Count > cur.num*watchLaterPageSize && len(page.items) > 0 {
		page.next = &pageCursor{num: cur.num + 1}
	}
	return page, nil
}
