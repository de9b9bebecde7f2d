package domain

import "time"

// Payment holds the raw card fields as submitted. Nothing is charged.
type Payment struct {
	FullName    string    `db:"fullname"`
	Email       string    `db:"email"`
	Package     string    `db:"package"`
	CardNumber  string    `db:"card_number"`
	ExpiryDate  string    `db:"expiry_date"`
	CVV         string    `db:"cvv"`
	PaymentDate time.Time `db:"payment_date"`
}

type Membership struct {
	FullName    string    `db:"fullname" json:"fullname"`
	Package     string    `db:"package" json:"package"`
	PaymentDate time.Time `db:"payment_date" json:"payment_date"`
}

type WeekSeries struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

type DashboardStats struct {
	TotalMembers    int
	NewMembersToday int
	LatestMembers   []RecentMember
	Week            WeekSeries
}
