package availability

import (
    "testing"

    "github.com/iliyamo/parking-spot-reservation/internal/model"
)

func TestDesiredFlag(t *testing.T) {
    cases := []struct {
        name            string
        status          model.BookingStatus
        remainingActive int
        want            bool
    }{
        {"pending closes slot", model.StatusPending, 0, false},
        {"confirmed closes slot", model.StatusConfirmed, 0, false},
        {"cancelled reopens empty slot", model.StatusCancelled, 0, true},
        {"completed reopens empty slot", model.StatusCompleted, 0, true},
        {"cancelled keeps held slot closed", model.StatusCancelled, 1, false},
        {"completed keeps held slot closed", model.StatusCompleted, 2, false},
    }
    for _, tc := range cases {
        if got := desiredFlag(tc.status, tc.remainingActive); got != tc.want {
            t.Errorf("%s: desiredFlag(%s, %d) = %v, want %v",
                tc.name, tc.status, tc.remainingActive, got, tc.want)
        }
    }
}
