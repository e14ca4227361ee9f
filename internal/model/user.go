package model

import "time"

const (
	RoleCook  = "cook"
	RoleEater = "eater"
)

type User struct {
	ID           string    `json:"id"`
	Login        string    `json:"login"`
	PasswordHash []byte    `json:"-"`
	Role         string    `json:"role"` // cook, eater
	CreatedAt    time.Time `json:"created_at"`
}
