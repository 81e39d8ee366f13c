package service

import (
	"DMR_Link/internal/repo"
	"DMR_Link/internal/storage"
	"DMR_Link/model"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultLinkTTL is the tracked lifetime used when a caller passes none.
const DefaultLinkTTL = 30 * time.Minute

// ErrLinkNotTracked is returned when revoking a link this system does not track.
var ErrLinkNotTracked = errors.New("link not tracked")

// ExpiryNotifier is told about every tracked link so expiry can be pushed
// back to the sweeper instead of waiting for the next tick.
type ExpiryNotifier interface {
	Schedule(ctx context.Context, linkID string, ttl time.Duration) error
}

// Locker serializes sweeps across processes. Extend pushes the expiry of a
// held lock forward and fails once the lock has been lost.
type Locker interface {
	Lock(ctx context.Context) error
	Extend(ctx context.Context) error
	Unlock(ctx context.Context) error
}

// SweepResult summarizes one sweep pass.
type SweepResult struct {
	Checked int  `json:"checked"`
	Revoked int  `json:"revoked"`
	Failed  int  `json:"failed"`
	Kept    int  `json:"kept"`
	Skipped bool `json:"skipped"`
}

// Tracker records outstanding sharing links and revokes them once expired.
//
// Track and Sweep are not serialized against each other: a link appended
// between a sweep's read and its rewrite is dropped from tracking and is then
// only cleaned up by the file store's own expiry.
type Tracker struct {
	store    repo.TrackerStore
	files    storage.FileStore
	notifier ExpiryNotifier
	lock     Locker
	limiter  *rate.Limiter
	now      func() time.Time

	sweeping sync.Mutex
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithExpiryNotifier mirrors tracked links into n.
func WithExpiryNotifier(n ExpiryNotifier) TrackerOption {
	return func(t *Tracker) { t.notifier = n }
}

// WithSweepLock guards every sweep with l.
func WithSweepLock(l Locker) TrackerOption {
	return func(t *Tracker) { t.lock = l }
}

// WithDeleteRate throttles remote delete calls during a sweep. perSecond <= 0 means unlimited.
func WithDeleteRate(perSecond float64) TrackerOption {
	return func(t *Tracker) {
		if perSecond <= 0 {
			t.limiter = nil
			return
		}
		t.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// NewTracker builds a tracker over store that revokes through files.
func NewTracker(store repo.TrackerStore, files storage.FileStore, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store: store,
		files: files,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Track records a link expiring ttl from now. ttl <= 0 uses DefaultLinkTTL.
func (t *Tracker) Track(ctx context.Context, link, password string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}
	entry := model.TrackedLink{
		Link:      link,
		Password:  password,
		ExpiresAt: t.now().Add(ttl),
	}
	if err := t.store.Append(ctx, entry); err != nil {
		return err
	}
	if t.notifier != nil {
		if err := t.notifier.Schedule(ctx, entry.ID(), ttl); err != nil {
			log.Printf("tracker: schedule expiry for %s failed: %v", entry.ID(), err)
		}
	}
	return nil
}

// Outstanding returns every tracked link.
func (t *Tracker) Outstanding(ctx context.Context) ([]model.TrackedLink, error) {
	return t.store.Load(ctx)
}

// Sweep revokes every tracked link past its expiry and rewrites the tracked
// list with the survivors. Delete failures are logged and the entry is still
// dropped. An empty or missing tracking record is a no-op. The sweep lock is
// extended before every delete; losing it aborts the sweep without
// rewriting the list.
func (t *Tracker) Sweep(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	if !t.sweeping.TryLock() {
		result.Skipped = true
		return result, nil
	}
	defer t.sweeping.Unlock()

	if t.lock != nil {
		if err := t.lock.Lock(ctx); err != nil {
			if errors.Is(err, repo.ErrLockBusy) {
				log.Println("sweep: another sweep holds the lock, skipping")
				result.Skipped = true
				return result, nil
			}
			return result, fmt.Errorf("sweep lock: %w", err)
		}
		defer func() {
			if err := t.lock.Unlock(context.Background()); err != nil {
				log.Printf("sweep: unlock failed: %v", err)
			}
		}()
	}

	links, err := t.store.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("sweep load: %w", err)
	}
	if len(links) == 0 {
		return result, nil
	}

	now := t.now()
	kept := make([]model.TrackedLink, 0, len(links))
	for i, link := range links {
		result.Checked++
		if !link.Expired(now) {
			kept = append(kept, link)
			continue
		}
		if t.limiter != nil {
			if err := t.limiter.Wait(ctx); err != nil {
				// interrupted: leave the rest for the next sweep
				kept = append(kept, links[i:]...)
				result.Checked += len(links) - i - 1
				break
			}
		}
		if t.lock != nil {
			if err := t.lock.Extend(ctx); err != nil {
				// another sweeper may own the list now; leave it untouched
				return result, fmt.Errorf("sweep lock lost: %w", err)
			}
		}
		log.Printf("sweep: deleting link %s expired at %s", link.Link, link.ExpiresAt.Format(time.RFC3339))
		if err := t.files.DeleteSharingLink(ctx, link.ID()); err != nil {
			log.Printf("sweep: delete %s failed: %v", link.Link, err)
			linksRevokedTotal.WithLabelValues("failed").Inc()
			result.Failed++
			continue
		}
		linksRevokedTotal.WithLabelValues("ok").Inc()
		result.Revoked++
	}
	result.Kept = len(kept)

	if err := t.store.Replace(ctx, kept); err != nil {
		return result, fmt.Errorf("sweep replace: %w", err)
	}
	return result, nil
}

// Revoke deletes one tracked link remotely and stops tracking it. Links that
// are not tracked are refused with ErrLinkNotTracked and never reach the file
// store. The remote delete error is returned after the link has been removed
// from tracking.
func (t *Tracker) Revoke(ctx context.Context, link string) error {
	links, err := t.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("revoke load: %w", err)
	}
	id := model.LinkID(link)
	kept := make([]model.TrackedLink, 0, len(links))
	found := false
	for _, l := range links {
		if id != "" && l.ID() == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrLinkNotTracked, link)
	}
	deleteErr := t.files.DeleteSharingLink(ctx, id)
	if err := t.store.Replace(ctx, kept); err != nil {
		return fmt.Errorf("revoke replace: %w", err)
	}
	return deleteErr
}
