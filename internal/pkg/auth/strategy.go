package auth

import "time"

// Claims are the identity facts carried inside a session token.
type Claims struct {
	UserID int64
	Email  string
	Role   string
}

type Strategy interface {
	IssueToken(claims Claims) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
