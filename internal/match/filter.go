// Package match turns a member's partner preferences into candidate
// filters for exchange discovery.
package match

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/genkan-app/genkan/internal/auth"
)

// Filter is a compiled view of one member's match settings. Build it
// once per discovery query with BuildFilter.
type Filter struct {
	seekerID uuid.UUID
	blocked  map[uuid.UUID]struct{}

	allowedGenders map[string]struct{}
	wantLanguages  []string

	// Candidates must be born inside [bornAfter, bornBefore]. Zero
	// bounds are open.
	bornAfter  time.Time
	bornBefore time.Time

	// Candidates must have registered before this instant.
	createdBefore time.Time

	now time.Time
}

// BuildFilter compiles the seeker's settings. A nil settings block
// yields a filter that only excludes the seeker and their blocks.
func BuildFilter(seeker *auth.User, blocked []uuid.UUID, now time.Time) *Filter {
	f := &Filter{
		seekerID: seeker.ID,
		blocked:  make(map[uuid.UUID]struct{}, len(blocked)),
		now:      now,
	}
	for _, id := range blocked {
		f.blocked[id] = struct{}{}
	}

	settings := seeker.MatchSettings
	if settings == nil {
		return f
	}

	if len(settings.AllowedGenders) > 0 {
		f.allowedGenders = make(map[string]struct{}, len(settings.AllowedGenders))
		for _, g := range settings.AllowedGenders {
			f.allowedGenders[g] = struct{}{}
		}
	}

	// A partner is useful when they know a language the seeker is
	// trying to learn.
	f.wantLanguages = settings.LanguagesLearn

	if settings.MaxAge > 0 {
		f.bornAfter = now.AddDate(-settings.MaxAge-1, 0, 0)
	}
	if settings.MinAge > 0 {
		f.bornBefore = now.AddDate(-settings.MinAge, 0, 0)
	}

	if settings.MinAccountAge != "" {
		if minAge, err := time.ParseDuration(settings.MinAccountAge); err == nil && minAge > 0 {
			f.createdBefore = now.Add(-minAge)
		}
	}

	return f
}

// Matches reports whether the candidate passes every compiled rule.
func (f *Filter) Matches(candidate *auth.User) bool {
	if candidate == nil || candidate.ID == f.seekerID {
		return false
	}
	if !candidate.IsVerified() {
		return false
	}
	if _, ok := f.blocked[candidate.ID]; ok {
		return false
	}

	profile := candidate.MatchSettings

	if f.allowedGenders != nil {
		if profile == nil {
			return false
		}
		if _, ok := f.allowedGenders[profile.Gender]; !ok {
			return false
		}
	}

	if len(f.wantLanguages) > 0 {
		if profile == nil || !overlaps(f.wantLanguages, profile.LanguagesKnown) {
			return false
		}
	}

	if !f.bornAfter.IsZero() || !f.bornBefore.IsZero() {
		if profile == nil || profile.Birthday == nil {
			return false
		}
		if !f.bornAfter.IsZero() && profile.Birthday.Before(f.bornAfter) {
			return false
		}
		if !f.bornBefore.IsZero() && profile.Birthday.After(f.bornBefore) {
			return false
		}
	}

	if !f.createdBefore.IsZero() {
		if candidate.CreatedAt == nil || candidate.CreatedAt.After(f.createdBefore) {
			return false
		}
	}

	return true
}

// Select keeps the candidates that pass the filter, preserving order.
func (f *Filter) Select(candidates []*auth.User) []*auth.User {
	matched := make([]*auth.User, 0, len(candidates))
	for _, c := range candidates {
		if f.Matches(c) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Apply narrows a users query to rows the filter could accept. The
// JSON-held profile rules still run through Matches afterwards; the
// query only prunes what SQL can see.
func (f *Filter) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	q = q.Where("?TableAlias.id != ?", f.seekerID).
		Where("?TableAlias.account_status = ?", auth.UserStatusVerified)

	if len(f.blocked) > 0 {
		ids := make([]uuid.UUID, 0, len(f.blocked))
		for id := range f.blocked {
			ids = append(ids, id)
		}
		q = q.Where("?TableAlias.id NOT IN (?)", bun.In(ids))
	}

	if !f.createdBefore.IsZero() {
		q = q.Where("?TableAlias.created_at <= ?", f.createdBefore)
	}

	return q
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
