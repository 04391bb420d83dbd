package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User holds a credential record. The password hash never leaves the server.
type User struct {
	Id           int64     `db:"id,omitempty" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsPremium    bool      `db:"is_premium" json:"isPremium"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// DisplayableUser is the creator/author projection embedded in content
// responses. Only identity fields, nothing credential-adjacent.
type DisplayableUser struct {
	Id    int64  `json:"id"`
	Email string `json:"email"`
}

func (u *User) Displayable() *DisplayableUser {
	return &DisplayableUser{
		Id:    u.Id,
		Email: u.Email,
	}
}
