// This file defines handlers for the public catalog API. These routes
// allow unauthenticated users to browse parking locations and slots
// without authentication. Reads are side-effect free and sit behind the
// Redis response cache.

package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/parking-spot-reservation/internal/availability"
    "github.com/iliyamo/parking-spot-reservation/internal/model"
    "github.com/iliyamo/parking-spot-reservation/internal/repository"
)

// CatalogHandler aggregates the read-side dependencies for browsing
// locations, slots and interval availability.
type CatalogHandler struct {
    Locations    *repository.LocationRepo
    Slots        *repository.SlotRepo
    Availability *availability.Reconciler
}

// NewCatalogHandler constructs a CatalogHandler with the provided
// dependencies.  All must be non-nil.
func NewCatalogHandler(locations *repository.LocationRepo, slots *repository.SlotRepo, avail *availability.Reconciler) *CatalogHandler {
    if locations == nil || slots == nil || avail == nil {
        panic("nil dependency passed to NewCatalogHandler")
    }
    return &CatalogHandler{Locations: locations, Slots: slots, Availability: avail}
}

// PublicLocation represents a parking location exposed via the public
// API.  Amenities are rendered in their normalized tag form.
type PublicLocation struct {
    ID              uint64   `json:"id"`
    Name            string   `json:"name"`
    Address         string   `json:"address"`
    HourlyRateCents uint64   `json:"hourly_rate_cents"`
    Amenities       []string `json:"amenities"`
    TotalSlots      uint32   `json:"total_slots"`
}

// PublicSlot represents a slot exposed via the public API.  The
// is_available field is the stored flag; for a time-range answer use
// the availability endpoint.
type PublicSlot struct {
    ID          uint64 `json:"id"`
    SlotNumber  string `json:"slot_number"`
    IsAvailable bool   `json:"is_available"`
}

func toPublicLocation(loc model.ParkingLocation) PublicLocation {
    tags := make([]string, 0, len(loc.Amenities))
    for _, a := range loc.Amenities {
        tags = append(tags, model.NormalizeAmenity(a))
    }
    return PublicLocation{
        ID:              loc.ID,
        Name:            loc.Name,
        Address:         loc.Address,
        HourlyRateCents: loc.HourlyRateCents,
        Amenities:       tags,
        TotalSlots:      loc.TotalSlots,
    }
}

// ListLocations handles GET /v1/locations.  The optional ?amenity=
// query filters locations to those advertising a matching tag;
// matching is case-insensitive and treats "EV Charging" and
// "ev-charging" as the same tag.
func (h *CatalogHandler) ListLocations(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    amenity := strings.TrimSpace(c.QueryParam("amenity"))
    locs, err := h.Locations.ListAll(ctx, amenity)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicLocation, 0, len(locs))
    for _, loc := range locs {
        out = append(out, toPublicLocation(loc))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetLocation handles GET /v1/locations/:id.
func (h *CatalogHandler) GetLocation(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    loc, err := h.Locations.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrLocationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": toPublicLocation(loc)})
}

// ListSlots handles GET /v1/locations/:id/slots.  Use the optional
// ?available=true|false query parameter to filter on the stored flag.
func (h *CatalogHandler) ListSlots(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    // validate the location exists so an empty list means "no slots",
    // not "no such location"
    if _, err := h.Locations.GetByID(ctx, id); err != nil {
        if errors.Is(err, repository.ErrLocationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    var filter *bool
    switch strings.ToLower(c.QueryParam("available")) {
    case "true":
        v := true
        filter = &v
    case "false":
        v := false
        filter = &v
    }
    slots, err := h.Slots.ListByLocation(ctx, id, filter)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicSlot, 0, len(slots))
    for _, s := range slots {
        out = append(out, PublicSlot{ID: s.ID, SlotNumber: s.SlotNumber, IsAvailable: s.IsAvailable})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// SlotAvailability handles GET /v1/slots/:id/availability.  It answers
// the computed question "is this slot free for [start, end)" from the
// booking ledger rather than the stored flag.  Both query parameters
// are required RFC3339 timestamps with start < end.
func (h *CatalogHandler) SlotAvailability(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
    }
    start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be RFC3339"})
    }
    end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be RFC3339"})
    }
    if !start.Before(end) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be before end"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    free, err := h.Availability.BookableFor(ctx, id, start.UTC(), end.UTC())
    if err != nil {
        if errors.Is(err, repository.ErrSlotNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "slot not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "slot_id":   id,
        "start":     start.UTC().Format(time.RFC3339),
        "end":       end.UTC().Format(time.RFC3339),
        "available": free,
    })
}
