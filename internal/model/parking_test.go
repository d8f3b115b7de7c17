package model

import (
    "reflect"
    "testing"
)

func TestNormalizeAmenity(t *testing.T) {
    cases := map[string]string{
        "EV Charging":   "ev-charging",
        "ev-charging":   "ev-charging",
        "  Covered  ":   "covered",
        "24x7 Security": "24x7-security",
        "Car  Wash":     "car-wash",
        "":              "",
    }
    for in, want := range cases {
        if got := NormalizeAmenity(in); got != want {
            t.Errorf("NormalizeAmenity(%q) = %q, want %q", in, got, want)
        }
    }
}

func TestHasAmenity(t *testing.T) {
    loc := ParkingLocation{Amenities: []string{"EV Charging", "covered", "CCTV"}}
    if !loc.HasAmenity("ev-charging") {
        t.Error("filter key ev-charging should match stored label 'EV Charging'")
    }
    if !loc.HasAmenity("Covered") {
        t.Error("case-insensitive match expected")
    }
    if !loc.HasAmenity("cctv") {
        t.Error("cctv should match CCTV")
    }
    if loc.HasAmenity("valet") {
        t.Error("valet must not match")
    }
    if !loc.HasAmenity("") {
        t.Error("empty filter matches everything")
    }
}

func TestSplitJoinAmenities(t *testing.T) {
    got := SplitAmenities("EV Charging, covered , ,CCTV")
    want := []string{"EV Charging", "covered", "CCTV"}
    if !reflect.DeepEqual(got, want) {
        t.Fatalf("SplitAmenities = %#v, want %#v", got, want)
    }
    if JoinAmenities(want) != "EV Charging,covered,CCTV" {
        t.Fatalf("JoinAmenities round trip mismatch: %q", JoinAmenities(want))
    }
    if got := SplitAmenities(""); len(got) != 0 {
        t.Fatalf("SplitAmenities(\"\") = %#v, want empty", got)
    }
}
