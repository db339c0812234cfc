package resolver

import (
	"encoding/json"
	"strconv"
)

const spaceUploadsPageSize = 50

// spaceUploadsAdapter 枚举一个 UP 主的全部投稿，
// 接口是 /x/space/arc/search，按发布时间倒序。
type spaceUploadsAdapter struct {
	client *Client
}

type spaceUploadsPayload struct {
	List *struct {
		VList []struct {
			BVID    string `json:"bvid"`
			Title   string `json:"title"`
			Pic     string `json:"pic"`
			Length  string `json:"length"` // "12:34" 形式，不换算
			Author  string `json:"author"`
		} `json:"vlist"`
	} `json:"list"`
	Page *struct {
		Count int `json:"count"`
	} `json:"page"`
}

func (a *spaceUploadsAdapter) fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error) {
	params := map[string]string{
		"mid":     ref.ID,
		"pn":      strconv.Itoa(cur.num),
		"ps":      strconv.Itoa(spaceUploadsPageSize),
		"tid":     "0",
		"keyword": "",
		"order":   "pubdate",
	}
	env, err := a.client.getEnvelope(a.client.apiBase+"/x/space/arc/search", params, credential, ref.Type, ref.ID)
	if err != nil {
		return fetchPage{}, err
	}

	var payload spaceUploadsPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return fetchPage{}, newError(ErrUpstreamMalformed, PlatformBilibili, ref.Type, ref.ID, "undecodable space uploads payload")
	}

	page := fetchPage{}
	if payload.Page != nil {
		page.total = payload.Page.Count
	}
	if payload.List != nil {
		for _, v := range payload.List.VList {
			if v.BVID == "" {
				continue
			}
			page.items = append(page.items, VideoDescriptor{
				Platform:           PlatformBilibili,
				VideoID:            v.BVID,
				Title:              v.Title,
				CoverURL:           v.Pic,
				SourceCollectionID: ref.ID,
			})
		}
	}
	if page.total > cur.num*spaceUploadsPageSize && len(page.items) > 0 {
		page.next = &pageCursor{num: cur.num + 1}
	}
	return page, nil
}
