package auth

type authIdentity struct {
	id       string
	email    string
	username string
	role     string
	status   UserStatus
}

var _ Identity = authIdentity{}

func (a authIdentity) ID() string         { return a.id }
func (a authIdentity) Email() string      { return a.email }
func (a authIdentity) Username() string   { return a.username }
func (a authIdentity) Role() string       { return a.role }
func (a authIdentity) Status() UserStatus { return a.status }

// IdentityFromUser adapts a stored user record to an Identity.
func IdentityFromUser(user *User) Identity {
	if user == nil {
		return nil
	}

	return authIdentity{
		id:       user.ID.String(),
		email:    user.Email,
		username: user.DisplayName(),
		role:     string(user.Role),
		status:   user.Status,
	}
}
