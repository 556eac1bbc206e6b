package match_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/genkan-app/genkan/internal/auth"
	"github.com/genkan-app/genkan/internal/match"
)

var now = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func candidate(age int, gender string, knows []string) *auth.User {
	birthday := now.AddDate(-age, 0, -1)
	created := now.AddDate(0, -6, 0)
	return &auth.User{
		ID:        uuid.New(),
		Status:    auth.UserStatusVerified,
		CreatedAt: &created,
		MatchSettings: &auth.MatchSettings{
			Birthday:       &birthday,
			Gender:         gender,
			LanguagesKnown: knows,
		},
	}
}

func seekerWith(settings *auth.MatchSettings) *auth.User {
	return &auth.User{
		ID:            uuid.New(),
		Status:        auth.UserStatusVerified,
		MatchSettings: settings,
	}
}

func TestFilterExcludesSeekerAndUnverified(t *testing.T) {
	seeker := seekerWith(nil)
	f := match.BuildFilter(seeker, nil, now)

	assert.False(t, f.Matches(seeker))

	pending := candidate(25, "f", nil)
	pending.Status = auth.UserStatusPending
	assert.False(t, f.Matches(pending))

	assert.True(t, f.Matches(candidate(25, "f", nil)))
}

func TestFilterExcludesBlockedMembers(t *testing.T) {
	blocked := candidate(30, "m", nil)
	other := candidate(30, "m", nil)

	f := match.BuildFilter(seekerWith(nil), []uuid.UUID{blocked.ID}, now)

	assert.False(t, f.Matches(blocked))
	assert.True(t, f.Matches(other))
}

func TestFilterGenderAllowList(t *testing.T) {
	seeker := seekerWith(&auth.MatchSettings{
		AllowedGenders: []string{"f", "nb"},
	})
	f := match.BuildFilter(seeker, nil, now)

	assert.True(t, f.Matches(candidate(25, "f", nil)))
	assert.True(t, f.Matches(candidate(25, "nb", nil)))
	assert.False(t, f.Matches(candidate(25, "m", nil)))

	// no profile at all cannot satisfy an explicit allow-list
	bare := &auth.User{ID: uuid.New(), Status: auth.UserStatusVerified}
	assert.False(t, f.Matches(bare))
}

func TestFilterLanguageOverlap(t *testing.T) {
	seeker := seekerWith(&auth.MatchSettings{
		LanguagesLearn: []string{"ja", "ko"},
	})
	f := match.BuildFilter(seeker, nil, now)

	assert.True(t, f.Matches(candidate(25, "f", []string{"ja", "en"})))
	assert.True(t, f.Matches(candidate(25, "f", []string{"ko"})))
	assert.False(t, f.Matches(candidate(25, "f", []string{"fr", "de"})))
	assert.False(t, f.Matches(candidate(25, "f", nil)))
}

func TestFilterAgeWindow(t *testing.T) {
	seeker := seekerWith(&auth.MatchSettings{
		MinAge: 20,
		MaxAge: 30,
	})
	f := match.BuildFilter(seeker, nil, now)

	assert.False(t, f.Matches(candidate(18, "f", nil)))
	assert.True(t, f.Matches(candidate(20, "f", nil)))
	assert.True(t, f.Matches(candidate(25, "f", nil)))
	assert.True(t, f.Matches(candidate(30, "f", nil)))
	assert.False(t, f.Matches(candidate(45, "f", nil)))

	// unknown birthday cannot satisfy an age window
	unknown := candidate(25, "f", nil)
	unknown.MatchSettings.Birthday = nil
	assert.False(t, f.Matches(unknown))
}

func TestFilterMinimumAccountAge(t *testing.T) {
	seeker := seekerWith(&auth.MatchSettings{
		MinAccountAge: "720h", // 30 days
	})
	f := match.BuildFilter(seeker, nil, now)

	old := candidate(25, "f", nil)
	assert.True(t, f.Matches(old))

	fresh := candidate(25, "f", nil)
	freshCreated := now.Add(-24 * time.Hour)
	fresh.CreatedAt = &freshCreated
	assert.False(t, f.Matches(fresh))

	// a malformed duration is ignored rather than blocking everyone
	lax := match.BuildFilter(seekerWith(&auth.MatchSettings{MinAccountAge: "soon"}), nil, now)
	assert.True(t, lax.Matches(fresh))
}

func TestFilterSelectPreservesOrder(t *testing.T) {
	seeker := seekerWith(&auth.MatchSettings{LanguagesLearn: []string{"ja"}})
	f := match.BuildFilter(seeker, nil, now)

	a := candidate(25, "f", []string{"ja"})
	b := candidate(25, "f", []string{"en"})
	c := candidate(25, "f", []string{"ja", "en"})

	got := f.Select([]*auth.User{a, b, c})
	assert.Equal(t, []*auth.User{a, c}, got)
}
