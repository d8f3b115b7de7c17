package handler

import (
    "testing"
    "time"

    "github.com/iliyamo/parking-spot-reservation/internal/model"
)

func TestParseBookingTimes(t *testing.T) {
    now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
    cases := []struct {
        name    string
        start   string
        end     string
        wantErr bool
    }{
        {"valid future interval", "2026-03-01T14:00:00Z", "2026-03-01T16:00:00Z", false},
        {"starts right now", "2026-03-01T12:00:00Z", "2026-03-01T13:00:00Z", false},
        {"offset timezone accepted", "2026-03-01T19:30:00+05:30", "2026-03-01T21:00:00+05:30", false},
        {"end before start", "2026-03-01T16:00:00Z", "2026-03-01T14:00:00Z", true},
        {"zero-length interval", "2026-03-01T14:00:00Z", "2026-03-01T14:00:00Z", true},
        {"start in the past", "2026-03-01T09:00:00Z", "2026-03-01T14:00:00Z", true},
        {"garbage start", "tomorrow", "2026-03-01T16:00:00Z", true},
        {"missing end", "2026-03-01T14:00:00Z", "", true},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            start, end, msg := parseBookingTimes(tc.start, tc.end, now)
            if tc.wantErr {
                if msg == "" {
                    t.Fatalf("expected an error message, got none (start=%v end=%v)", start, end)
                }
                return
            }
            if msg != "" {
                t.Fatalf("unexpected error: %s", msg)
            }
            if !start.Before(end) {
                t.Fatalf("parsed interval is not ordered: %v .. %v", start, end)
            }
            if start.Location() != time.UTC {
                t.Fatalf("start not normalized to UTC: %v", start)
            }
        })
    }
}

func TestInitialStatus(t *testing.T) {
    cases := []struct {
        raw  string
        want model.BookingStatus
        ok   bool
    }{
        {"", model.StatusPending, true},
        {"pending", model.StatusPending, true},
        {"confirmed", model.StatusConfirmed, true},
        {"cancelled", "", false},
        {"completed", "", false},
        {"PAID", "", false},
    }
    for _, tc := range cases {
        got, ok := initialStatus(tc.raw)
        if ok != tc.ok || got != tc.want {
            t.Errorf("initialStatus(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
        }
    }
}

func TestAmountCents(t *testing.T) {
    base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
    cases := []struct {
        name string
        rate uint64
        dur  time.Duration
        want uint64
    }{
        {"exact hour", 5000, time.Hour, 5000},
        {"three exact hours", 5000, 3 * time.Hour, 15000},
        {"started hour rounds up", 5000, 90 * time.Minute, 10000},
        {"one minute bills an hour", 5000, time.Minute, 5000},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := amountCents(tc.rate, base, base.Add(tc.dur)); got != tc.want {
                t.Fatalf("amountCents = %d, want %d", got, tc.want)
            }
        })
    }
}
