package cookie

import (
	"log"
	"strings"

	"github.com/fangguanya/BiliNote/internal/model"
	"gorm.io/gorm"
)

// Manager 是平台 Cookie 的唯一存取入口。写入方是外部扫码登录流程，
// 解析器一侧只通过 Lookup 拿到只读快照。
type Manager struct {
	db *gorm.DB
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// Get returns the stored cookie for a platform. Empty string means anonymous.
func (m *Manager) Get(platform string) (string, bool) {
	var rec model.PlatformCookie
	if err := m.db.Where("platform = ?", platform).First(&rec).Error; err != nil {
		return "", false
	}
	if strings.TrimSpace(rec.Cookie) == "" {
		return "", false
	}
	return rec.Cookie, true
}

func (m *Manager) Set(platform, cookie string) error {
	var rec model.PlatformCookie
	if err := m.db.Where("platform = ?", platform).First(&rec).Error; err != nil {
		rec = model.PlatformCookie{Platform: platform, Cookie: cookie}
		if err := m.db.Create(&rec).Error; err != nil {
			return err
		}
	} else {
		rec.Cookie = cookie
		if err := m.db.Save(&rec).Error; err != nil {
			return err
		}
	}
	log.Printf("cookie saved for platform %s (len=%d)", platform, len(cookie))
	return nil
}

func (m *Manager) Delete(platform string) error {
	return m.db.Where("platform = ?", platform).Delete(&model.PlatformCookie{}).Error
}

func (m *Manager) Exists(platform string) bool {
	_, ok := m.Get(platform)
	return ok
}

// Lookup 返回符合 resolver.CredentialLookup 的闭包
func (m *Manager) Lookup() func(platform string) (string, bool) {
	return m.Get
}
