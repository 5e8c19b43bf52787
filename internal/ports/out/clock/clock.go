package clock

import "time"

// Clock provides time to the application.
// Cache expiry and favorite timestamps read it so tests can drive time manually.
type Clock interface {
	Now() time.Time
}
