package service

import (
	"DMR_Link/internal/storage"
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"
)

// MatchStrategy selects how CreateLink looks for the target file.
type MatchStrategy int

const (
	// MatchPattern searches top-level names with a case-insensitive regular
	// expression. A matching directory is scanned one level down.
	MatchPattern MatchStrategy = iota
	// MatchPatternNested scans every top-level directory one level down
	// with the pattern. Top-level files are ignored.
	MatchPatternNested
	// MatchExactNested scans every top-level directory one level down for a
	// file or folder named exactly like the search term.
	MatchExactNested
)

// LinkRequest describes one sharing link to create.
type LinkRequest struct {
	Category   string // label for logs and metrics
	SearchTerm string
	Password   string
	Folder     string // category folder, absolute on the file store
	TTL        time.Duration
	Strategy   MatchStrategy
}

// LinkFactory finds documents on the file store and shares them.
type LinkFactory struct {
	files     storage.FileStore
	tracker   *Tracker
	portStrip string
	now       func() time.Time
}

// NewLinkFactory builds a link factory. portStrip is the internal port token
// removed from returned URLs; empty keeps URLs unchanged.
func NewLinkFactory(files storage.FileStore, tracker *Tracker, portStrip string) *LinkFactory {
	return &LinkFactory{
		files:     files,
		tracker:   tracker,
		portStrip: portStrip,
		now:       time.Now,
	}
}

// CreateLink shares the first file matching the request and tracks the link.
// It returns "" with a nil error when nothing matches. File store failures
// are returned as-is.
func (f *LinkFactory) CreateLink(ctx context.Context, req LinkRequest) (string, error) {
	term := strings.TrimSpace(req.SearchTerm)
	if term == "" {
		return "", nil
	}
	ttl := req.TTL
	if ttl <= 0 {
		ttl = DefaultLinkTTL
	}

	entry, err := f.find(ctx, req.Folder, term, req.Strategy)
	if err != nil {
		return "", err
	}
	if entry == nil {
		return "", nil
	}

	link, err := f.files.CreateSharingLink(ctx, entry.Path, req.Password, f.now().Add(ttl))
	if err != nil {
		return "", err
	}
	link = f.publicURL(link)
	linksCreatedTotal.WithLabelValues(req.Category).Inc()

	if f.tracker != nil {
		if err := f.tracker.Track(ctx, link, req.Password, ttl); err != nil {
			log.Printf("[CreateLink] track %s failed, link will not be swept: %v", link, err)
		}
	}
	return link, nil
}

// find runs a depth-one search of folder and returns the first match in listing order.
func (f *LinkFactory) find(ctx context.Context, folder, term string, strategy MatchStrategy) (*storage.Entry, error) {
	entries, err := f.files.ListChildren(ctx, folder)
	if err != nil {
		return nil, err
	}

	match := exactMatcher(term)
	if strategy != MatchExactNested {
		match = patternMatcher(term)
	}

	for _, entry := range entries {
		switch strategy {
		case MatchPattern:
			if !match(entry.Name) {
				continue
			}
			if !entry.IsDir {
				found := entry
				return &found, nil
			}
		case MatchPatternNested, MatchExactNested:
			if !entry.IsDir {
				continue
			}
		default:
			return nil, fmt.Errorf("unknown match strategy %d", strategy)
		}

		found, err := f.findIn(ctx, entry.Path, match, strategy == MatchExactNested)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, nil
}

// findIn returns the first file in dir accepted by match. Folders are
// candidates only when withDirs is set.
func (f *LinkFactory) findIn(ctx context.Context, dir string, match func(string) bool, withDirs bool) (*storage.Entry, error) {
	children, err := f.files.ListChildren(ctx, dir)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if (withDirs || !child.IsDir) && match(child.Name) {
			found := child
			return &found, nil
		}
	}
	return nil, nil
}

func (f *LinkFactory) publicURL(link string) string {
	if f.portStrip == "" {
		return link
	}
	return strings.ReplaceAll(link, ":"+f.portStrip, "")
}

func exactMatcher(term string) func(string) bool {
	return func(name string) bool { return name == term }
}

// patternMatcher compiles term as a case-insensitive regular expression,
// falling back to a literal match when term is not a valid expression.
func patternMatcher(term string) func(string) bool {
	re, err := regexp.Compile("(?i)" + term)
	if err != nil {
		re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	}
	return re.MatchString
}
