package domain

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleMember Role = "Member"
	RoleAdmin  Role = "Admin"
)

func (r Role) Valid() bool { return r == RoleMember || r == RoleAdmin }

// User is a row of the users table. Password is NULL for accounts created
// outside the signup flow.
type User struct {
	ID          int64          `db:"userid"`
	DisplayName string         `db:"displayname"`
	Surname     string         `db:"surname"`
	Email       string         `db:"email"`
	Phone       string         `db:"phone"`
	Password    sql.NullString `db:"password"`
	Role        Role           `db:"role"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (u *User) Snapshot() Snapshot {
	return Snapshot{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Surname:     u.Surname,
	}
}

// Member is the admin listing projection of a user.
type Member struct {
	ID          int64     `db:"id" json:"id"`
	DisplayName string    `db:"displayname" json:"displayname"`
	Surname     string    `db:"surname" json:"surname"`
	Email       string    `db:"email" json:"email"`
	Phone       string    `db:"phone" json:"phone"`
	Role        Role      `db:"role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type RecentMember struct {
	DisplayName string    `db:"displayname" json:"displayname"`
	Surname     string    `db:"surname" json:"surname"`
	Email       string    `db:"email" json:"email"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
