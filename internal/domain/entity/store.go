package entity

import "time"

// Store a kirana shop. Created by provisioning; deactivated, never deleted.
type Store struct {
	ID        string
	Name      string
	OwnerID   string
	Phone     string
	Address   string
	GSTNumber string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
