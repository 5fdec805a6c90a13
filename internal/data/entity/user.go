package entity

import "github.com/google/uuid"

// UserRole is asserted by the identity service inside the access token.
type UserRole string

const (
	RolePassenger UserRole = "passenger"
	RoleDriver    UserRole = "driver"
	RoleAdmin     UserRole = "admin"
)

// Preference holds the recommendation settings of a user.
// Nil fare bounds mean the user never set them.
type Preference struct {
	UserID          uuid.UUID `db:"id"`
	FareRangeMin    *float64  `db:"fare_range_min"`
	FareRangeMax    *float64  `db:"fare_range_max"`
	PreferredRoutes []string  `db:"preferred_routes"`
}
