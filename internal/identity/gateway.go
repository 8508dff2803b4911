// Package identity abstracts the sign-in provider. The session controller
// only depends on the Gateway contract: identity-or-none delivered on every
// session change.
package identity

import "sync"

// Identity is an authenticated principal as reported by the provider. The
// UID is opaque and stable for the lifetime of the account.
type Identity struct {
	UID         string  `json:"uid"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
}

// Gateway delivers session-change notifications. A nil identity means the
// session ended. Notifications are delivered serially: no two callbacks run
// concurrently.
type Gateway interface {
	Subscribe(callback func(*Identity)) (unsubscribe func())
}

// Broker is the in-process Gateway implementation. Sign-in and sign-out
// handlers feed it; a single dispatch goroutine fans notifications out to
// subscribers in order.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]func(*Identity)
	nextID int

	notifications chan *Identity
	done          chan struct{}
	closeOnce     sync.Once
}

func NewBroker() *Broker {
	b := &Broker{
		subs:          make(map[int]func(*Identity)),
		notifications: make(chan *Identity, 16),
		done:          make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *Broker) dispatch() {
	for {
		select {
		case <-b.done:
			return
		case id := <-b.notifications:
			b.mu.Lock()
			callbacks := make([]func(*Identity), 0, len(b.subs))
			for _, cb := range b.subs {
				callbacks = append(callbacks, cb)
			}
			b.mu.Unlock()
			for _, cb := range callbacks {
				cb(id)
			}
		}
	}
}

func (b *Broker) Subscribe(callback func(*Identity)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = callback
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// SignedIn announces an authenticated session.
func (b *Broker) SignedIn(id Identity) {
	b.notifications <- &id
}

// SignedOut announces the end of the current session.
func (b *Broker) SignedOut() {
	b.notifications <- nil
}

// Close stops the dispatch goroutine. Pending notifications are dropped.
func (b *Broker) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}
