package wishlist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/yab-g4u/Ablack/pkg/kvstore"
)

const (
	keyPrefix  = "wishlist:"
	casRetries = 5
)

// ErrConflict is returned when a toggle keeps losing the compare-and-swap
// race; rapid double-toggles serialize instead of losing a write.
var ErrConflict = errors.New("wishlist: concurrent modification, retry")

// Entry is one persisted wishlist entry.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DateAdded time.Time `json:"dateAdded"`
}

// Update is broadcast to subscribers after every successful toggle so
// other mounted views refresh without a reload.
type Update struct {
	Owner     string
	ProductID string
	Added     bool
	Size      int
}

// Store persists the wishlist as a JSON list per owner. Membership is a
// set: Toggle filters or appends, never duplicates.
type Store struct {
	kv kvstore.Store

	mu   sync.Mutex
	subs map[int]chan Update
	next int
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv, subs: make(map[int]chan Update)}
}

// Entries returns the owner's full wishlist.
func (s *Store) Entries(ctx context.Context, owner string) ([]Entry, error) {
	raw, err := s.kv.Get(ctx, keyPrefix+owner)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	return entries, nil
}

// IsMember reports whether productID is in the owner's wishlist.
func (s *Store) IsMember(ctx context.Context, owner, productID string) (bool, error) {
	entries, err := s.Entries(ctx, owner)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.ID == productID {
			return true, nil
		}
	}
	return false, nil
}

// Toggle adds productID if absent and removes it if present. It returns
// whether the product is a member after the call. Storage failures come
// back as errors; nothing is thrown away silently.
func (s *Store) Toggle(ctx context.Context, owner, productID, productName string) (bool, error) {
	key := keyPrefix + owner

	for attempt := 0; attempt < casRetries; attempt++ {
		old, err := s.kv.Get(ctx, key)
		if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			return false, fmt.Errorf("load wishlist: %w", err)
		}

		var entries []Entry
		if old != nil {
			if err := json.Unmarshal(old, &entries); err != nil {
				return false, fmt.Errorf("decode wishlist: %w", err)
			}
		}

		added := true
		filtered := make([]Entry, 0, len(entries)+1)
		for _, e := range entries {
			if e.ID == productID {
				added = false
				continue
			}
			filtered = append(filtered, e)
		}
		if added {
			filtered = append(filtered, Entry{ID: productID, Name: productName, DateAdded: time.Now()})
		}

		updated, err := json.Marshal(filtered)
		if err != nil {
			return false, fmt.Errorf("encode wishlist: %w", err)
		}

		swapped, err := s.kv.CompareAndSwap(ctx, key, old, updated, 0)
		if err != nil {
			return false, fmt.Errorf("save wishlist: %w", err)
		}
		if swapped {
			s.broadcast(Update{Owner: owner, ProductID: productID, Added: added, Size: len(filtered)})
			return added, nil
		}
	}
	return false, ErrConflict
}

// Subscribe registers for update notifications. The returned func
// unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	ch := make(chan Update, 16)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// broadcast is non-blocking; a slow subscriber misses updates rather
// than stalling toggles.
func (s *Store) broadcast(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
		}
	}
}
