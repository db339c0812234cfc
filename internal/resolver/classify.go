package resolver

import (
	"regexp"
)

// classification 是 URL 分类的结果：要么猜测为单视频，要么指向一个合集
type classification struct {
	Platform   Platform
	VideoID    string         // 单视频猜测时非空
	Collection *CollectionRef // 合集 URL 时非空
}

// 平台识别，顺序无关紧要，域名互不重叠
var platformPatterns = []struct {
	re       *regexp.Regexp
	platform Platform
}{
	{regexp.MustCompile(`bilibili\.com|b23\.tv`), PlatformBilibili},
	{regexp.MustCompile(`douyin\.com|iesdouyin\.com`), PlatformDouyin},
	{regexp.MustCompile(`youtube\.com|youtu\.be`), PlatformYouTube},
	{regexp.MustCompile(`kuaishou\.com`), PlatformKuaishou},
}

// B站 URL 形态，按优先级排列：具体的合集形态在前，泛化的单视频兜底在后
var (
	reFavlist       = regexp.MustCompile(`favlist\?(?:.*&)?fid=(\d+)`)
	reCollection    = regexp.MustCompile(`space\.bilibili\.com/(\d+)/channel/collectiondetail\?(?:.*&)?sid=(\d+)`)
	reCollectionSid = regexp.MustCompile(`collectiondetail\?(?:.*&)?sid=(\d+)`)
	reSeries        = regexp.MustCompile(`space\.bilibili\.com/(\d+)/channel/seriesdetail\?(?:.*&)?sid=(\d+)`)
	reSeriesSid     = regexp.MustCompile(`seriesdetail\?(?:.*&)?sid=(\d+)`)
	reWatchlater    = regexp.MustCompile(`watchlater`)
	reBangumiSeason = regexp.MustCompile(`bangumi/play/ss(\d+)`)
	reBangumiMedia  = regexp.MustCompile(`bangumi/media/md(\d+)`)
	reVideo         = regexp.MustCompile(`bilibili\.com/video/(BV[0-9A-Za-z]+|av\d+)`)
	reSpaceVideo    = regexp.MustCompile(`space\.bilibili\.com/(\d+)(?:/video|/upload/video|/?$|/\?)`)
	reChannelIndex  = regexp.MustCompile(`space\.bilibili\.com/(\d+)/channel/index`)

	reDouyinVideo   = regexp.MustCompile(`/video/(\d+)`)
	reDouyinUser    = regexp.MustCompile(`douyin\.com/user/([^/?#]+)`)
	reDouyinHashtag = regexp.MustCompile(`douyin\.com/hashtag/([^/?#]+)`)
	reYoutubeVideo  = regexp.MustCompile(`(?:v=|youtu\.be/)([0-9A-Za-z_-]{11})`)
)

// classify 把原始 URL 映射为 (平台, 内容形态猜测)。纯函数，不发网络请求。
func classify(rawURL string) (classification, error) {
	var platform Platform
	for _, p := range platformPatterns {
		if p.re.MatchString(rawURL) {
			platform = p.platform
			break
		}
	}
	if platform == "" {
		return classification{}, newError(ErrUnsupportedPlatform, "", "", "", "no known platform matches %q", rawURL)
	}

	switch platform {
	case PlatformBilibili:
		return classifyBilibili(rawURL)
	case PlatformDouyin:
		return classifyDouyin(rawURL)
	case PlatformYouTube:
		if m := reYoutubeVideo.FindStringSubmatch(rawURL); m != nil {
			return classification{Platform: PlatformYouTube, VideoID: m[1]}, nil
		}
		return classification{}, newError(ErrUnsupportedURLShape, PlatformYouTube, "", "", "unrecognized youtube url shape")
	default:
		// 快手只识别平台，没有可解析的形态
		return classification{}, newError(ErrUnsupportedURLShape, platform, "", "", "no resolvable url shape for platform")
	}
}

func classifyBilibili(rawURL string) (classification, error) {
	ref := func(t CollectionType, id, owner string, auth bool) (classification, error) {
		return classification{
			Platform: PlatformBilibili,
			Collection: &CollectionRef{
				Platform:     PlatformBilibili,
				Type:         t,
				ID:           id,
				OwnerID:      owner,
				RequiresAuth: auth,
			},
		}, nil
	}

	if m := reFavlist.FindStringSubmatch(rawURL); m != nil {
		// 私密收藏夹只能在请求后从响应码得知，这里不标记 RequiresAuth
		return ref(CollectionFavorites, m[1], "", false)
	}
	if m := reCollection.FindStringSubmatch(rawURL); m != nil {
		return ref(CollectionPersonal, m[2], m[1], false)
	}
	if m := reCollectionSid.FindStringSubmatch(rawURL); m != nil {
		return ref(CollectionPersonal, m[1], "", false)
	}
	if m := reSeries.FindStringSubmatch(rawURL); m != nil {
		return ref(CollectionSeries, m[2], m[1], false)
	}
	if m := reSeriesSid.FindStringSubmatch(rawURL); m != nil {
		return ref(CollectionSeries, m[1], "", false)
	}
	if reWatchlater.MatchString(rawURL) {
		// 稍后再看永远绑定登录态，匿名请求注定失败
		return ref(CollectionWatchLater, "watchlater", "", true)
	}
	if m := reBangumiSeason.FindStringSubmatch(rawURL); m != nil {
		return ref(CollectionBangumiSeason, m[1], "", false)
	}
	if m := reBangumiMedia.FindStringSubmatch(rawURL); m != nil {
		return ref(CollectionBangumiMedia, m[1], "", false)
	}
	if m := reVideo.FindStringSubmatch(rawURL); m != nil {
		return classification{Platform: PlatformBilibili, VideoID: m[1]}, nil
	}
	if m := reChannelIndex.FindStringSubmatch(rawURL); m != nil {
		return ref(CollectionChannel, m[1], m[1], false)
	}
	if m := reSpaceVideo.FindStringSubmatch(rawURL); m != nil {
		return ref(CollectionUserUploads, m[1], m[1], false)
	}
	return classification{}, newError(ErrUnsupportedURLShape, PlatformBilibili, "", "", "unrecognized bilibili url shape")
}

func classifyDouyin(rawURL string) (classification, error) {
	if m := reDouyinUser.FindStringSubmatch(rawURL); m != nil {
		return classification{
			Platform: PlatformDouyin,
			Collection: &CollectionRef{Platform: PlatformDouyin, Type: CollectionUserUploads, ID: m[1], OwnerID: m[1]},
		}, nil
	}
	if m := reDouyinHashtag.FindStringSubmatch(rawURL); m != nil {
		return classification{
			Platform: PlatformDouyin,
			Collection: &CollectionRef{Platform: PlatformDouyin, Type: CollectionChannel, ID: m[1]},
		}, nil
	}
	if m := reDouyinVideo.FindStringSubmatch(rawURL); m != nil {
		return classification{Platform: PlatformDouyin, VideoID: m[1]}, nil
	}
	return classification{}, newError(ErrUnsupportedURLShape, PlatformDouyin, "", "", "unrecognized douyin url shape")
}
