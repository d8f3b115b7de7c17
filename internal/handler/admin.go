package handler // handler package contains admin catalog management handlers

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/parking-spot-reservation/internal/model"
    "github.com/iliyamo/parking-spot-reservation/internal/repository"
)

// AdminHandler manages the parking catalog.  Every route it serves
// sits behind the ADMIN role gate; customers only ever read the
// catalog through CatalogHandler.
type AdminHandler struct {
    Locations *repository.LocationRepo
    Slots     *repository.SlotRepo
}

// NewAdminHandler constructs an AdminHandler.  Both repos must be
// non-nil.
func NewAdminHandler(locations *repository.LocationRepo, slots *repository.SlotRepo) *AdminHandler {
    if locations == nil || slots == nil {
        panic("nil dependency passed to NewAdminHandler")
    }
    return &AdminHandler{Locations: locations, Slots: slots}
}

// CreateLocation handles POST /v1/admin/locations.  Amenity tags are
// normalized before storage so the public filter matches regardless of
// how the admin typed them.
func (h *AdminHandler) CreateLocation(c echo.Context) error {
    var body struct {
        Name            string   `json:"name"`
        Address         string   `json:"address"`
        HourlyRateCents uint64   `json:"hourly_rate_cents"`
        Amenities       []string `json:"amenities"`
        TotalSlots      uint32   `json:"total_slots"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(body.Name)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    address := strings.TrimSpace(body.Address)
    if address == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "address is required"})
    }
    if body.HourlyRateCents == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "hourly_rate_cents must be positive"})
    }
    tags := make([]string, 0, len(body.Amenities))
    for _, a := range body.Amenities {
        if t := model.NormalizeAmenity(a); t != "" {
            tags = append(tags, t)
        }
    }
    loc := model.ParkingLocation{
        Name:            name,
        Address:         address,
        HourlyRateCents: body.HourlyRateCents,
        Amenities:       tags,
        TotalSlots:      body.TotalSlots,
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    if err := h.Locations.Create(ctx, &loc); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create location"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": toPublicLocation(loc)})
}

// CreateSlot handles POST /v1/admin/locations/:id/slots.  The slot
// number must be unique within the location.
func (h *AdminHandler) CreateSlot(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid location id"})
    }
    var body struct {
        SlotNumber string `json:"slot_number"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    number := strings.TrimSpace(body.SlotNumber)
    if number == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot_number is required"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()
    if _, err := h.Locations.GetByID(ctx, id); err != nil {
        if errors.Is(err, repository.ErrLocationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "location not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    slot := model.ParkingSlot{LocationID: id, SlotNumber: number}
    if err := h.Slots.Create(ctx, &slot); err != nil {
        if errors.Is(err, repository.ErrSlotNumberTaken) {
            return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrSlotNumberTaken.Error()})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create slot"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"item": PublicSlot{ID: slot.ID, SlotNumber: slot.SlotNumber, IsAvailable: slot.IsAvailable}})
}
