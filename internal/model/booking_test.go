package model

import (
    "testing"
    "time"
)

func TestParseStatus(t *testing.T) {
    for _, raw := range []string{"pending", "confirmed", "cancelled", "completed"} {
        s, ok := ParseStatus(raw)
        if !ok || string(s) != raw {
            t.Fatalf("ParseStatus(%q) = %q, %v", raw, s, ok)
        }
    }
    for _, raw := range []string{"", "PENDING", "done", "pending "} {
        if _, ok := ParseStatus(raw); ok {
            t.Fatalf("ParseStatus(%q) accepted unknown status", raw)
        }
    }
}

func TestStatusClassification(t *testing.T) {
    if !StatusPending.IsActive() || !StatusConfirmed.IsActive() {
        t.Fatal("pending and confirmed must occupy the slot")
    }
    if StatusCancelled.IsActive() || StatusCompleted.IsActive() {
        t.Fatal("cancelled and completed must not occupy the slot")
    }
    if !StatusCancelled.IsTerminal() || !StatusCompleted.IsTerminal() {
        t.Fatal("cancelled and completed are terminal")
    }
    if StatusPending.IsTerminal() || StatusConfirmed.IsTerminal() {
        t.Fatal("pending and confirmed are not terminal")
    }
}

func TestCanTransition(t *testing.T) {
    cases := []struct {
        from, to BookingStatus
        want     bool
    }{
        {StatusPending, StatusConfirmed, true},
        {StatusPending, StatusCancelled, true},
        {StatusPending, StatusCompleted, false},
        {StatusPending, StatusPending, false},
        {StatusConfirmed, StatusCancelled, true},
        {StatusConfirmed, StatusCompleted, true},
        {StatusConfirmed, StatusPending, false},
        // cancelled is terminal but re-cancel stays a no-op success
        {StatusCancelled, StatusCancelled, true},
        {StatusCancelled, StatusConfirmed, false},
        {StatusCancelled, StatusPending, false},
        {StatusCompleted, StatusPending, false},
        {StatusCompleted, StatusCancelled, false},
        {StatusCompleted, StatusConfirmed, false},
    }
    for _, tc := range cases {
        if got := CanTransition(tc.from, tc.to); got != tc.want {
            t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
        }
    }
}

func TestOverlaps(t *testing.T) {
    at := func(h int) time.Time {
        return time.Date(2025, 1, 10, h, 0, 0, 0, time.UTC)
    }
    cases := []struct {
        name                       string
        aStart, aEnd, bStart, bEnd time.Time
        want                       bool
    }{
        {"identical", at(10), at(11), at(10), at(11), true},
        {"contained", at(10), at(14), at(11), at(12), true},
        {"partial front", at(10), at(12), at(11), at(13), true},
        {"partial back", at(11), at(13), at(10), at(12), true},
        {"touching end-start", at(10), at(11), at(11), at(12), false},
        {"touching start-end", at(11), at(12), at(10), at(11), false},
        {"disjoint", at(8), at(9), at(10), at(11), false},
    }
    for _, tc := range cases {
        if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
            t.Errorf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
        }
        // overlap is symmetric
        if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
            t.Errorf("%s (swapped): Overlaps = %v, want %v", tc.name, got, tc.want)
        }
    }
}
