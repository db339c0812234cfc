package worker

import (
	"log"

	"github.com/fangguanya/BiliNote/internal/db"
	"github.com/fangguanya/BiliNote/internal/event"
	"github.com/fangguanya/BiliNote/internal/model"
)

// StartHistoryWorker 订阅解析完成/失败事件，把摘要落到 resolve_records 表。
// 写库在事件回调里异步进行，不挡解析请求的响应
func StartHistoryWorker() {
	persist := func(e event.Event) {
		rec, ok := e.Payload.(model.ResolveRecord)
		if !ok {
			return
		}
		if err := db.DB.Create(&rec).Error; err != nil {
			log.Printf("Worker: failed to persist resolve record %s: %v", rec.RequestID, err)
		}
	}

	event.GlobalBus.Subscribe(event.EventResolveCompleted, persist)
	event.GlobalBus.Subscribe(event.EventResolveFailed, persist)
}
