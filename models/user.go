package models

import "github.com/uptrace/bun"

// User is an API user with bcrypt-hashed password.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID         int    `bun:"user_id,pk,autoincrement" json:"user_id"`
	Email          string `bun:"email,notnull,unique" json:"email"`
	HashedPassword string `bun:"hashed_password,notnull" json:"-"`
}
