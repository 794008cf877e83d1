// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filters translates user-facing selectors (named sources, date
// ranges, channel and subreddit lists, document URIs) into the search
// API's filter-map representation.
//
// The external schema is asymmetric: some sources are a boolean facet
// (pubmed), some a publisher facet (arxiv, biorxiv, medrxiv), the rest
// a document-type facet (wiki, standard). Filters hides that asymmetry
// behind one uniform builder and serializes to the wire format only at
// the call boundary.
package filters

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/spacefrontiers-mcp/pkg/types"
)

// DateFormat is the ISO calendar date layout accepted by tools.
const DateFormat = "2006-01-02"

// publisherSources are selector tokens modeled as a publisher facet.
// Order matters: publishers are appended in input order.
var publisherSources = map[string]bool{
	"arxiv":   true,
	"biorxiv": true,
	"medrxiv": true,
}

// Filters accumulates typed filter predicates before serialization.
// The zero value is an empty filter set.
type Filters struct {
	// IsPubmed marks the PubMed boolean facet.
	IsPubmed bool

	// Publishers lists publisher facet values, in input order.
	Publishers []string

	// Types lists document-type facet values (e.g. "wiki", "standard").
	Types []string

	// IssuedAt is an inclusive [start,end] range in POSIX epoch seconds,
	// nil when no date filter applies.
	IssuedAt *[2]int64

	// URIs restricts matching to exact document URIs.
	URIs []string

	// ChannelUsernames restricts Telegram retrieval to these channels.
	ChannelUsernames []string

	// Subreddits restricts Reddit retrieval to these subreddits.
	Subreddits []string
}

// ApplySources expands named source selector tokens into their filter
// predicates. Tokens are matched case-insensitively; "pubmed" becomes
// the boolean facet, arxiv/biorxiv/medrxiv append to the publisher
// facet, and every remaining token is collected verbatim into the
// document-type facet.
func (f *Filters) ApplySources(sources []string) {
	for _, s := range sources {
		token := strings.ToLower(strings.TrimSpace(s))
		switch {
		case token == "":
		case token == "pubmed":
			f.IsPubmed = true
		case publisherSources[token]:
			f.Publishers = append(f.Publishers, token)
		default:
			f.Types = append(f.Types, token)
		}
	}
}

// ApplyDateRange attaches an issued_at range predicate. A zero start or
// end means "absent": with both absent the call is a no-op; a missing
// start defaults to the epoch and a missing end to tomorrow relative to
// now. Bounds are taken at local midnight of each calendar date.
func (f *Filters) ApplyDateRange(start, end time.Time, now time.Time) {
	if start.IsZero() && end.IsZero() {
		return
	}
	if start.IsZero() {
		start = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.Local)
	}
	if end.IsZero() {
		end = midnight(now).AddDate(0, 0, 1)
	}
	f.IssuedAt = &[2]int64{midnight(start).Unix(), midnight(end).Unix()}
}

// SetURI restricts matching to a single document URI.
func (f *Filters) SetURI(uri string) {
	f.URIs = []string{uri}
}

// SetChannels sets the Telegram channel filter. A leading "@" on a
// username is accepted and stripped.
func (f *Filters) SetChannels(usernames []string) {
	if len(usernames) == 0 {
		return
	}
	f.ChannelUsernames = make([]string, len(usernames))
	for i, u := range usernames {
		f.ChannelUsernames[i] = strings.TrimPrefix(u, "@")
	}
}

// SetSubreddits sets the subreddit filter. A leading "r/" on a name is
// accepted and stripped.
func (f *Filters) SetSubreddits(names []string) {
	if len(names) == 0 {
		return
	}
	f.Subreddits = make([]string, len(names))
	for i, n := range names {
		f.Subreddits[i] = strings.TrimPrefix(n, "r/")
	}
}

// IsEmpty reports whether no predicate has been set.
func (f *Filters) IsEmpty() bool {
	return !f.IsPubmed &&
		len(f.Publishers) == 0 &&
		len(f.Types) == 0 &&
		f.IssuedAt == nil &&
		len(f.URIs) == 0 &&
		len(f.ChannelUsernames) == 0 &&
		len(f.Subreddits) == 0
}

// Wire serializes the filters to the external filter-map format. Every
// value is list-wrapped because the filter language expects multi-value
// predicates; the issued_at range is a single-element list of one
// [start,end] pair.
func (f *Filters) Wire() types.FilterMap {
	m := types.FilterMap{}
	if f.IsPubmed {
		m["metadata.is_pubmed"] = []bool{true}
	}
	if len(f.Publishers) > 0 {
		m["metadata.publisher"] = f.Publishers
	}
	if len(f.Types) > 0 {
		m["type"] = f.Types
	}
	if f.IssuedAt != nil {
		m["issued_at"] = [][2]int64{*f.IssuedAt}
	}
	if len(f.URIs) > 0 {
		m["uris"] = f.URIs
	}
	if len(f.ChannelUsernames) > 0 {
		m["telegram_channel_usernames"] = f.ChannelUsernames
	}
	if len(f.Subreddits) > 0 {
		m["metadata.subreddit"] = f.Subreddits
	}
	return m
}

// ParseDate parses an ISO calendar date in the local timezone. An empty
// string yields the zero time and no error.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// midnight truncates t to local midnight of its calendar date.
func midnight(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
