package domain

import "time"

type Retailer struct {
	ID        string
	Name      string
	Domain    string
	IsActive  bool
	CreatedAt time.Time
}
