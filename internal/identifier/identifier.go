// Package identifier allocates the 4-digit suffix that disambiguates
// duplicate display names, e.g. "alice#0042".
package identifier

import (
	"fmt"
	"math/rand"

	"github.com/goliatone/go-errors"
)

// Limit is the number of distinct suffixes per display name.
const Limit = 9999

// ErrExhausted is returned when every suffix for a name is taken.
var ErrExhausted = errors.New("no more identifiers available", errors.CategoryConflict).
	WithCode(errors.CodeConflict)

// Allocate picks a random unused 4-digit suffix given the suffixes
// already taken for the same name.
func Allocate(used []string) (string, error) {
	if len(used) >= Limit {
		return "", ErrExhausted
	}

	taken := make(map[int]struct{}, len(used))
	for _, u := range used {
		var n int
		if _, err := fmt.Sscanf(u, "%d", &n); err == nil {
			taken[n] = struct{}{}
		}
	}

	allowed := make([]int, 0, Limit-len(taken))
	for n := 0; n < Limit; n++ {
		if _, ok := taken[n]; !ok {
			allowed = append(allowed, n)
		}
	}

	if len(allowed) == 0 {
		return "", ErrExhausted
	}

	pick := allowed[rand.Intn(len(allowed))]
	return fmt.Sprintf("%04d", pick), nil
}
