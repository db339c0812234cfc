package resolver

import (
	"encoding/json"
	"strconv"
	"strings"
)

// viewInfo 对应 /x/web-interface/view 的 data 载荷。
// 可缺字段一律用指针或切片表达，缺失就是 nil，不做动态探测。
type viewInfo struct {
	BVID     string `json:"bvid"`
	AID      int64  `json:"aid"`
	Title    string `json:"title"`
	Pic      string `json:"pic"`
	Duration int    `json:"duration"`
	Owner    struct {
		Mid  int64  `json:"mid"`
		Name string `json:"name"`
	} `json:"owner"`
	Pages     []viewPage  `json:"pages"`
	UgcSeason *ugcSeason  `json:"ugc_season"`
	Season    *viewSeason `json:"season"`
}

type viewPage struct {
	CID      int64  `json:"cid"`
	Page     int    `json:"page"`
	Part     string `json:"part"`
	Duration int    `json:"duration"`
}

type ugcSeason struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Mid   int64  `json:"mid"`
}

type viewSeason struct {
	SeasonID int64  `json:"season_id"`
	Title    string `json:"title"`
}

// VideoInfo 拉取单个视频的详情。bvid 也接受 av 号。
func (c *Client) VideoInfo(videoID, credential string) (*viewInfo, error) {
	params := map[string]string{}
	if strings.HasPrefix(videoID, "av") {
		params["aid"] = strings.TrimPrefix(videoID, "av")
	} else {
		params["bvid"] = videoID
	}

	env, err := c.getEnvelope(c.apiBase+"/x/web-interface/view", params, credential, "", videoID)
	if err != nil {
		return nil, err
	}

	var info viewInfo
	if err := json.Unmarshal(env.Data, &info); err != nil {
		return nil, newError(ErrUpstreamMalformed, PlatformBilibili, "", videoID, "undecodable view payload")
	}
	if info.BVID == "" && info.AID == 0 {
		return nil, newError(ErrUpstreamMalformed, PlatformBilibili, "", videoID, "view payload missing video id")
	}
	return &info, nil
}

// canonicalID 优先 BV 号，老视频只有 av 号时退回 av 形式
func (v *viewInfo) canonicalID() string {
	if v.BVID != "" {
		return v.BVID
	}
	return "av" + strconv.FormatInt(v.AID, 10)
}

// descriptor 把 view 结果转成单视频描述
func (v *viewInfo) descriptor() VideoDescriptor {
	return VideoDescriptor{
		Platform: PlatformBilibili,
		VideoID:  v.canonicalID(),
		Title:    v.Title,
		CoverURL: v.Pic,
		Duration: v.Duration,
	}
}

// partDescriptors 把多分P展开成每分P一条描述，数据全部来自 view 响应，
// 不需要再发请求
func (v *viewInfo) partDescriptors() []VideoDescriptor {
	id := v.canonicalID()
	out := make([]VideoDescriptor, 0, len(v.Pages))
	for _, p := range v.Pages {
		title := strings.TrimSpace(p.Part)
		if title == "" {
			title = v.Title
		}
		out = append(out, VideoDescriptor{
			Platform:           PlatformBilibili,
			VideoID:            id,
			Title:              title,
			CoverURL:           v.Pic,
			Duration:           p.Duration,
			PartIndex:          p.Page,
			SourceCollectionID: id,
		})
	}
	return out
}
