package resolver

// drive 反复调用适配器翻页直到取满或取尽。
// 退出条件：没有下一页；累计数量达到 maxVideos；硬性翻页上限
// （防御接口翻页 bug 造成的死循环）；或不可降级的失败。
// 已有成功页之后的 MALFORMED 降级为截断，保住已取到的数据。
func (r *Resolver) drive(f pageFetcher, ref CollectionRef, credential string, maxVideos int) (*ResolutionResult, error) {
	acc := newAccumulator()
	cur := pageCursor{num: 1}
	truncated := false
	sawPage := false

	for calls := 0; ; calls++ {
		if calls >= r.pageCallCap {
			truncated = true
			break
		}

		page, err := f.fetchPage(ref, cur, credential)
		if err != nil {
			if KindOf(err) == ErrUpstreamMalformed && sawPage {
				// 半途坏掉的流当作到头，残缺但可用的列表好过全部丢弃
				truncated = true
				break
			}
			return nil, err
		}
		sawPage = true
		acc.absorb(page)

		if len(acc.items) >= maxVideos {
			if len(acc.items) > maxVideos || page.next != nil || page.total > maxVideos {
				truncated = true
			}
			break
		}
		if page.next == nil {
			break
		}
		cur = *page.next
	}

	return &ResolutionResult{
		Collection: &ref,
		Videos:     acc.finish(maxVideos),
		Truncated:  truncated,
	}, nil
}
