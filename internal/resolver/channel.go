package resolver

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// channelIndexAdapter 处理频道首页。频道没有稳定的列表接口，
// 退而从页面 HTML 里抽 /video/BV 链接，尽力而为，单页即止。
type channelIndexAdapter struct {
	client *Client
}

var reHrefBVID = regexp.MustCompile(`/video/(BV[0-9A-Za-z]+)`)

func (a *channelIndexAdapter) fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error) {
	url := a.client.spaceBase + "/" + ref.OwnerID + "/channel/index"
	body, err := a.client.get(url, nil, credential)
	if err != nil {
		decorate(err, ref.Type, ref.ID)
		return fetchPage{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return fetchPage{}, newError(ErrUpstreamMalformed, PlatformBilibili, ref.Type, ref.ID, "unparseable channel page")
	}

	page := fetchPage{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := reHrefBVID.FindStringSubmatch(href)
		if m == nil {
			return
		}
		title := strings.TrimSpace(sel.AttrOr("title", ""))
		if title == "" {
			title = strings.TrimSpace(sel.Text())
		}
		page.items = append(page.items, VideoDescriptor{
			Platform:           PlatformBilibili,
			VideoID:            m[1],
			Title:              title,
			SourceCollectionID: ref.ID,
		})
	})

	if len(page.items) == 0 {
		// 频道页是脚本渲染的时候抽不到链接，按空合集处理而不是报错
		return page, nil
	}
	page.total = len(page.items)
	return page, nil
}
