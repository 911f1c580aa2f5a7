package usecase

import (
	"sync"
	"time"
)

// NotificationLevel — уровень всплывающего уведомления.
type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyInfo    NotificationLevel = "info"
	NotifyError   NotificationLevel = "error"
)

// Notifier — приёмник уведомлений «показать сообщение».
// Реализации не должны блокироваться и не должны влиять на изменение состояния.
type Notifier interface {
	Notify(level NotificationLevel, message string)
}

// Notification — одно уведомление, ожидающее показа клиенту.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
	At      time.Time         `json:"at"`
}

// NotificationBuffer хранит последние уведомления сессии.
// При переполнении самые старые уведомления отбрасываются.
type NotificationBuffer struct {
	mu    sync.Mutex
	items []Notification
	limit int
	now   func() time.Time
}

func NewNotificationBuffer(limit int) *NotificationBuffer {
	if limit < 1 {
		limit = 1
	}

	return &NotificationBuffer{
		items: make([]Notification, 0, limit),
		limit: limit,
		now:   time.Now,
	}
}

func (b *NotificationBuffer) Notify(level NotificationLevel, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) == b.limit {
		copy(b.items, b.items[1:])
		b.items = b.items[:len(b.items)-1]
	}
	b.items = append(b.items, Notification{Level: level, Message: message, At: b.now()})
}

// Drain возвращает накопленные уведомления и очищает буфер.
func (b *NotificationBuffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Notification, len(b.items))
	copy(out, b.items)
	b.items = b.items[:0]
	return out
}

// MultiNotifier рассылает уведомление всем приёмникам по очереди.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(level NotificationLevel, message string) {
	for _, n := range m {
		if n != nil {
			n.Notify(level, message)
		}
	}
}
