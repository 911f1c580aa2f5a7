package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

// Session объединяет состояние одного покупателя: корзину, список желаний и фильтр.
type Session struct {
	ID            string
	Cart          *CartLedger
	Wishlist      *Wishlist
	Filter        *FilterState
	Notifications *NotificationBuffer

	lastSeen time.Time
}

// SessionRegistry хранит сессии в памяти процесса и вытесняет простаивающие.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	idleTTL          time.Duration
	notificationsCap int
	sink             Notifier
	logger           logger.Logger
	now              func() time.Time
}

// NewSessionRegistry создаёт реестр. sink получает копию каждого уведомления (например, в лог).
func NewSessionRegistry(idleTTL time.Duration, notificationsCap int, sink Notifier, logger logger.Logger) *SessionRegistry {
	if logger == nil {
		panic("usecase.NewSessionRegistry: nil logger")
	}

	return &SessionRegistry{
		sessions:         make(map[string]*Session),
		idleTTL:          idleTTL,
		notificationsCap: notificationsCap,
		sink:             sink,
		logger:           logger,
		now:              time.Now,
	}
}

// Create открывает новую сессию с пустой корзиной и фильтром по умолчанию.
func (r *SessionRegistry) Create() *Session {
	buffer := NewNotificationBuffer(r.notificationsCap)
	notifier := MultiNotifier{buffer, r.sink}

	s := &Session{
		ID:            uuid.NewString(),
		Cart:          NewCartLedger(notifier),
		Wishlist:      NewWishlist(notifier),
		Filter:        NewFilterState(),
		Notifications: buffer,
	}

	r.mu.Lock()
	s.lastSeen = r.now()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Debugf("Session created: id=%s", s.ID)
	return s
}

// Get возвращает сессию и продлевает её жизнь.
func (r *SessionRegistry) Get(id string) (*Session, error) {
	const op = "SessionRegistry.Get"

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, e.Wrap(op, e.ErrSessionNotFound)
	}
	s.lastSeen = r.now()
	return s, nil
}

func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Sweep удаляет сессии, простаивающие дольше idleTTL. Возвращает число удалённых.
func (r *SessionRegistry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deadline := r.now().Add(-r.idleTTL)
	evicted := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(deadline) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// RunSweeper периодически вызывает Sweep до отмены контекста.
func (r *SessionRegistry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Infof("Evicted %d idle session(s), %d left", n, r.Len())
			}
		}
	}
}
