package resolver

import (
	"testing"
)

func TestClassify_BilibiliCollections(t *testing.T) {
	cases := []struct {
		URL          string
		Type         CollectionType
		ID           string
		OwnerID      string
		RequiresAuth bool
	}{
		{"https://space.bilibili.com/12345/favlist?fid=678", CollectionFavorites, "678", "", false},
		{"https://www.bilibili.com/favlist?fid=990011", CollectionFavorites, "990011", "", false},
		{"https://space.bilibili.com/12345/channel/collectiondetail?sid=777", CollectionPersonal, "777", "12345", false},
		{"https://space.bilibili.com/12345/channel/seriesdetail?sid=888&ctype=0", CollectionSeries, "888", "12345", false},
		{"https://www.bilibili.com/watchlater/#/list", CollectionWatchLater, "watchlater", "", true},
		{"https://www.bilibili.com/bangumi/play/ss33802", CollectionBangumiSeason, "33802", "", false},
		{"https://www.bilibili.com/bangumi/media/md28229233", CollectionBangumiMedia, "28229233", "", false},
		{"https://space.bilibili.com/12345/video", CollectionUserUploads, "12345", "12345", false},
		{"https://space.bilibili.com/12345", CollectionUserUploads, "12345", "12345", false},
		{"https://space.bilibili.com/12345/channel/index", CollectionChannel, "12345", "12345", false},
	}

	for _, c := range cases {
		cls, err := classify(c.URL)
		if err != nil {
			t.Errorf("classify(%s) failed: %v", c.URL, err)
			continue
		}
		if cls.Platform != PlatformBilibili {
			t.Errorf("classify(%s): platform = %s, expected bilibili", c.URL, cls.Platform)
		}
		if cls.Collection == nil {
			t.Errorf("classify(%s): expected collection, got single video %q", c.URL, cls.VideoID)
			continue
		}
		if cls.Collection.Type != c.Type {
			t.Errorf("classify(%s): type = %s, expected %s", c.URL, cls.Collection.Type, c.Type)
		}
		if cls.Collection.ID != c.ID {
			t.Errorf("classify(%s): id = %s, expected %s", c.URL, cls.Collection.ID, c.ID)
		}
		if cls.Collection.OwnerID != c.OwnerID {
			t.Errorf("classify(%s): owner = %s, expected %s", c.URL, cls.Collection.OwnerID, c.OwnerID)
		}
		if cls.Collection.RequiresAuth != c.RequiresAuth {
			t.Errorf("classify(%s): requires_auth = %v, expected %v", c.URL, cls.Collection.RequiresAuth, c.RequiresAuth)
		}
	}
}

func TestClassify_SingleVideo(t *testing.T) {
	cases := []struct {
		URL      string
		Platform Platform
		VideoID  string
	}{
		{"https://www.bilibili.com/video/BV1vc411b7Wa", PlatformBilibili, "BV1vc411b7Wa"},
		{"https://www.bilibili.com/video/BV1vc411b7Wa?p=3", PlatformBilibili, "BV1vc411b7Wa"},
		{"https://www.bilibili.com/video/av170001", PlatformBilibili, "av170001"},
		{"https://www.douyin.com/video/7123456789012345678", PlatformDouyin, "7123456789012345678"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", PlatformYouTube, "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", PlatformYouTube, "dQw4w9WgXcQ"},
	}

	for _, c := range cases {
		cls, err := classify(c.URL)
		if err != nil {
			t.Errorf("classify(%s) failed: %v", c.URL, err)
			continue
		}
		if cls.Collection != nil {
			t.Errorf("classify(%s): unexpected collection %s", c.URL, cls.Collection.Type)
			continue
		}
		if cls.Platform != c.Platform || cls.VideoID != c.VideoID {
			t.Errorf("classify(%s) = (%s, %s), expected (%s, %s)", c.URL, cls.Platform, cls.VideoID, c.Platform, c.VideoID)
		}
	}
}

func TestClassify_CollectionBeforeVideoFallback(t *testing.T) {
	// 收藏夹 URL 里也可能带 video 字样，合集形态必须先于单视频兜底匹配
	cls, err := classify("https://space.bilibili.com/1/favlist?fid=42&ftype=create")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if cls.Collection == nil || cls.Collection.Type != CollectionFavorites {
		t.Fatalf("expected favorites classification, got %+v", cls)
	}
}

func TestClassify_DouyinCollections(t *testing.T) {
	cls, err := classify("https://www.douyin.com/user/MS4wLjABAAAA123")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if cls.Collection == nil || cls.Collection.Type != CollectionUserUploads {
		t.Fatalf("expected douyin user uploads, got %+v", cls)
	}

	cls, err = classify("https://www.douyin.com/hashtag/dance")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if cls.Collection == nil || cls.Collection.Type != CollectionChannel {
		t.Fatalf("expected douyin hashtag channel, got %+v", cls)
	}
}

func TestClassify_Errors(t *testing.T) {
	cases := []struct {
		URL  string
		Kind ErrorKind
	}{
		{"https://example.com/video/123", ErrUnsupportedPlatform},
		{"https://www.bilibili.com/read/cv123456", ErrUnsupportedURLShape},
		{"https://www.kuaishou.com/short-video/abc", ErrUnsupportedURLShape},
		{"https://www.youtube.com/playlist?list=PL123", ErrUnsupportedURLShape},
	}

	for _, c := range cases {
		_, err := classify(c.URL)
		if err == nil {
			t.Errorf("classify(%s): expected error %s, got nil", c.URL, c.Kind)
			continue
		}
		if KindOf(err) != c.Kind {
			t.Errorf("classify(%s): kind = %s, expected %s", c.URL, KindOf(err), c.Kind)
		}
	}
}
