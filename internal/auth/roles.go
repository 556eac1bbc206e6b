package auth

var roleRank = map[UserRole]int{
	RoleUser:      0,
	RoleGuide:     1,
	RoleLeadGuide: 2,
	RoleAdmin:     3,
}

// RoleIsAtLeast reports whether role meets the minimum role level.
// Unknown roles rank below every known role.
func RoleIsAtLeast(role, min UserRole) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	m, ok := roleRank[min]
	if !ok {
		return false
	}
	return r >= m
}

// RoleIsAllowed reports whether role is in the allowed set.
func RoleIsAllowed(role UserRole, allowed ...UserRole) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
