package auth

import "time"

var _ Session = &SessionObject{}

// SessionObject is the resolved form of a validated bearer token.
type SessionObject struct {
	UserID   string     `json:"user_id,omitempty"`
	Role     string     `json:"role,omitempty"`
	Audience []string   `json:"audience,omitempty"`
	Issuer   string     `json:"issuer,omitempty"`
	IssuedAt *time.Time `json:"issued_at,omitempty"`
	Expires  *time.Time `json:"expires,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetAudience() []string {
	return s.Audience
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrTokenMalformed
	}

	issued := claims.IssuedAt()
	expires := claims.Expires()

	session := &SessionObject{
		UserID: claims.UserID(),
		Role:   claims.Role(),
	}

	if !issued.IsZero() {
		session.IssuedAt = &issued
	}
	if !expires.IsZero() {
		session.Expires = &expires
	}

	if jc, ok := claims.(*JWTClaims); ok {
		session.Issuer = jc.RegisteredClaims.Issuer
		session.Audience = jc.RegisteredClaims.Audience
	}

	return session, nil
}
