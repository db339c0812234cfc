package model

import (
	"gorm.io/gorm"
)

// PlatformCookie 保存外部登录流程写入的平台 Cookie
// 解析器只读，不会修改或续期
type PlatformCookie struct {
	gorm.Model
	Platform string `json:"platform" gorm:"uniqueIndex"` // bilibili / douyin / youtube ...
	Cookie   string `json:"-"`                           // 原始 Cookie 串，不下发给前端
}

// ResolveRecord 记录一次解析的结果摘要，方便前端展示历史
type ResolveRecord struct {
	gorm.Model
	RequestID      string `json:"request_id" gorm:"index"` // uuid
	URL            string `json:"url"`
	Platform       string `json:"platform"`
	CollectionType string `json:"collection_type"` // 空串表示单视频
	CollectionID   string `json:"collection_id"`
	VideoCount     int    `json:"video_count"`
	Truncated      bool   `json:"truncated"`
	ErrorKind      string `json:"error_kind"` // 失败时的错误分类
}
