package domain

import (
	"time"

	"github.com/google/uuid"
)

// Organization owns geofences. It is managed outside the console; the console
// only references it.
type Organization struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
