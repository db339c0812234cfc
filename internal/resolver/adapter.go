package resolver

// pageFetcher 是所有接口族适配器的统一契约。
// cursor 从第 1 页开始，凭证为空串表示匿名访问。
type pageFetcher interface {
	fetchPage(ref CollectionRef, cur pageCursor, credential string) (fetchPage, error)
}

// fetcherFor 按合集类型选择适配器。MULTI_PART 不在这里：
// 分P数据内嵌在 view 响应里，不需要翻页。
func (r *Resolver) fetcherFor(t CollectionType) (pageFetcher, bool) {
	switch t {
	case CollectionFavorites:
		return &favoritesAdapter{client: r.client}, true
	case CollectionPersonal, CollectionUGCSeason:
		return &seasonArchivesAdapter{client: r.client}, true
	case CollectionSeries:
		return &seriesArchivesAdapter{client: r.client}, true
	case CollectionWatchLater:
		return &watchLaterAdapter{client: r.client}, true
	case CollectionBangumiSeason:
		return &bangumiSectionAdapter{client: r.client}, true
	case CollectionBangumiMedia:
		return &bangumiMediaAdapter{client: r.client}, true
	case CollectionUserUploads:
		return &spaceUploadsAdapter{client: r.client}, true
	case CollectionChannel:
		return &channelIndexAdapter{client: r.client}, true
	default:
		return nil, false
	}
}
