package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackedLink is an outstanding sharing link awaiting revocation.
type TrackedLink struct {
	Link      string    `bson:"link" json:"link"`
	Password  string    `bson:"password" json:"-"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// Expired reports whether the link is due for revocation at now.
func (l TrackedLink) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// ID returns the file store's link id, the last path segment of the URL.
func (l TrackedLink) ID() string {
	return LinkID(l.Link)
}

// LinkID extracts the sharing link id from a link URL.
func LinkID(link string) string {
	link = strings.TrimRight(link, "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}

// LinkTrackerDocument is the single tracking record shared by all link producers.
type LinkTrackerDocument struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"`
	Links []TrackedLink      `bson:"links"`
}
