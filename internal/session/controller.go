package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/identity"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
)

// ProfileStore is the slice of the profile repository the controller needs.
type ProfileStore interface {
	GetByUID(ctx context.Context, uid string) (*models.Profile, error)
	CreateIfAbsent(ctx context.Context, uid, email, displayName string, photoURL *string) error
}

// Controller is the sole writer of the session store. It registers exactly
// one gateway subscription, and for every notification publishes the
// identity followed by the matching profile. The first notification, however
// it resolves, flips loading to false exactly once.
type Controller struct {
	store    *Store
	profiles ProfileStore

	mu          sync.Mutex
	current     *identity.Identity
	unsubscribe func()
	loadedOnce  bool
}

func NewController(store *Store, profiles ProfileStore) *Controller {
	return &Controller{store: store, profiles: profiles}
}

// Start subscribes to the gateway. Calling Start twice replaces the previous
// subscription so at most one is ever active.
func (c *Controller) Start(gateway identity.Gateway) {
	c.mu.Lock()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.mu.Unlock()
	unsub := gateway.Subscribe(c.handleNotification)
	c.mu.Lock()
	c.unsubscribe = unsub
	c.mu.Unlock()
}

func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) handleNotification(id *identity.Identity) {
	c.mu.Lock()
	c.current = id
	c.mu.Unlock()

	c.store.setIdentity(id)
	if id != nil {
		c.store.setProfile(c.fetchProfile(context.Background(), *id))
	} else {
		c.store.setProfile(nil)
	}

	c.mu.Lock()
	first := !c.loadedOnce
	c.loadedOnce = true
	c.mu.Unlock()
	if first {
		c.store.setLoading(false)
	}
}

// fetchProfile lazily creates the profile record on first sight of an
// identity, then reads it back. An absent profile is an explicit nil, not an
// error: downstream treats it as onboarding-not-completed.
func (c *Controller) fetchProfile(ctx context.Context, id identity.Identity) *models.Profile {
	if err := c.profiles.CreateIfAbsent(ctx, id.UID, id.Email, id.DisplayName, id.PhotoURL); err != nil {
		log.Printf("session: create profile for %s: %v", id.UID, err)
	}
	profile, err := c.profiles.GetByUID(ctx, id.UID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Printf("session: fetch profile for %s: %v", id.UID, err)
		}
		return nil
	}
	return profile
}

// Refresh re-fetches the profile for the currently held identity and
// republishes it. It is a no-op when no identity is held.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	id := c.current
	c.mu.Unlock()
	if id == nil {
		return
	}
	c.store.setProfile(c.fetchProfile(ctx, *id))
}
