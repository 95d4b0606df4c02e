package sweet

import (
	"time"

	"github.com/zsefvlol/timezonemapper"
)

// Location resolves the zone whose midnight starts a new day.
// An IANA name wins, then coordinates, then the process zone.
func Location(name string, lat, long float64) (*time.Location, error) {
	if name != "" {
		return time.LoadLocation(name)
	}
	if lat != 0 || long != 0 {
		return time.LoadLocation(timezonemapper.LatLngToTimezoneString(lat, long))
	}
	return time.Local, nil
}
