package model

import (
    "strings"
    "time"
)

// ParkingLocation describes a facility that contains bookable slots.
// Locations are reference data: the application reads them but never
// mutates them outside of seeding.
//
// Fields:
//  ID              – primary key identifier.
//  Name            – display name of the facility.
//  Address         – street address.
//  HourlyRateCents – hourly price in paise, applied to every slot.
//  Amenities       – normalized amenity tags (ev-charging, covered, ...).
//  TotalSlots      – number of slots the facility advertises.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type ParkingLocation struct {
    ID              uint64    // parking_locations.id
    Name            string    // parking_locations.name
    Address         string    // parking_locations.address
    HourlyRateCents uint64    // parking_locations.hourly_rate_cents
    Amenities       []string  // parking_locations.amenities (comma separated column)
    TotalSlots      uint32    // parking_locations.total_slots
    CreatedAt       time.Time // parking_locations.created_at
    UpdatedAt       time.Time // parking_locations.updated_at
}

// ParkingSlot is an individually bookable space within a location.
// IsAvailable is the legacy stored flag kept approximately in sync by
// the availability reconciler; the authoritative answer for a given
// interval comes from the bookings table.
//
// Fields:
//  ID          – primary key identifier.
//  LocationID  – location the slot belongs to.
//  SlotNumber  – human label such as "A1".
//  IsAvailable – stored availability flag (reconciled, best effort).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type ParkingSlot struct {
    ID          uint64    // parking_slots.id
    LocationID  uint64    // parking_slots.location_id
    SlotNumber  string    // parking_slots.slot_number
    IsAvailable bool      // parking_slots.is_available
    CreatedAt   time.Time // parking_slots.created_at
    UpdatedAt   time.Time // parking_slots.updated_at
}

// NormalizeAmenity converts an amenity label or filter key into its
// canonical tag form: lower case with runs of whitespace collapsed to a
// single hyphen.  "EV Charging" and "ev-charging" normalize to the
// same tag.
func NormalizeAmenity(raw string) string {
    fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
    return strings.Join(fields, "-")
}

// HasAmenity reports whether the location advertises the given amenity
// tag.  Both sides are normalized before comparison so that stored
// labels and filter keys in either form match.
func (l *ParkingLocation) HasAmenity(tag string) bool {
    want := NormalizeAmenity(tag)
    if want == "" {
        return true
    }
    for _, a := range l.Amenities {
        if NormalizeAmenity(a) == want {
            return true
        }
    }
    return false
}

// SplitAmenities parses the comma separated amenities column into a
// slice of trimmed tags.  Empty entries are dropped.
func SplitAmenities(column string) []string {
    parts := strings.Split(column, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        if t := strings.TrimSpace(p); t != "" {
            out = append(out, t)
        }
    }
    return out
}

// JoinAmenities renders amenity tags back into the column form.
func JoinAmenities(tags []string) string {
    return strings.Join(tags, ",")
}
