package room_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/genkan-app/genkan/internal/room"
)

func TestSlowModeCooldown(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	lastPost := now.Add(-10 * time.Second)

	r := &room.Room{SlowModeSeconds: 30}
	member := &room.Member{Role: room.RoleMember, LastMessageAt: &lastPost}

	t.Run("inside the cooldown the member waits", func(t *testing.T) {
		ok, wait := member.CanPostAt(r, now)
		assert.False(t, ok)
		assert.Equal(t, 20*time.Second, wait)
	})

	t.Run("after the cooldown the member may post", func(t *testing.T) {
		ok, wait := member.CanPostAt(r, now.Add(25*time.Second))
		assert.True(t, ok)
		assert.Zero(t, wait)
	})

	t.Run("posting exactly at the boundary is allowed", func(t *testing.T) {
		ok, _ := member.CanPostAt(r, lastPost.Add(30*time.Second))
		assert.True(t, ok)
	})

	t.Run("first message is never throttled", func(t *testing.T) {
		fresh := &room.Member{Role: room.RoleMember}
		ok, _ := fresh.CanPostAt(r, now)
		assert.True(t, ok)
	})

	t.Run("moderators are exempt", func(t *testing.T) {
		moderator := &room.Member{Role: room.RoleModerator, LastMessageAt: &lastPost}
		ok, _ := moderator.CanPostAt(r, now)
		assert.True(t, ok)
	})

	t.Run("zero seconds disables slow mode", func(t *testing.T) {
		open := &room.Room{SlowModeSeconds: 0}
		ok, _ := member.CanPostAt(open, now)
		assert.True(t, ok)
	})
}
