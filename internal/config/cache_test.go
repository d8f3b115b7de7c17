package config

import (
    "testing"
    "time"
)

func TestParseMethods(t *testing.T) {
    m := parseMethods("get, head ,POST,")
    for _, want := range []string{"GET", "HEAD", "POST"} {
        if !m[want] {
            t.Errorf("method %s missing from %v", want, m)
        }
    }
    if len(m) != 3 {
        t.Errorf("parseMethods produced %d entries, want 3", len(m))
    }
}

func TestParseDur(t *testing.T) {
    if d := parseDur("90s"); d != 90*time.Second {
        t.Errorf("parseDur(90s) = %v", d)
    }
    // invalid input falls back to one second rather than zero
    if d := parseDur("not-a-duration"); d != time.Second {
        t.Errorf("parseDur fallback = %v, want 1s", d)
    }
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
    t.Setenv("RATE_LIMIT_CAPACITY", "0")
    t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
    t.Setenv("RATE_LIMIT_TTL", "1s")
    t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
    cfg := LoadRateLimitConfig()
    if cfg.Capacity < 1 || cfg.RefillTokens < 1 {
        t.Fatalf("capacity/refill not clamped: %+v", cfg)
    }
    if cfg.TTL < 5*cfg.RefillInterval {
        t.Fatalf("TTL %v shorter than five refill intervals", cfg.TTL)
    }
}
