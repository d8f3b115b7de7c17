package middleware

import (
    "net/http"
    "testing"
)

func TestCachePayloadCodec(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    body := []byte(`{"items":[]}`)
    payload, err := encodePayload(http.StatusOK, hdr, body)
    if err != nil {
        t.Fatalf("encodePayload: %v", err)
    }
    status, gotHdr, gotBody, ok := decodePayload(payload)
    if !ok || status != http.StatusOK {
        t.Fatalf("decodePayload ok=%v status=%d", ok, status)
    }
    if gotHdr.Get("Content-Type") != "application/json" {
        t.Errorf("header lost: %v", gotHdr)
    }
    if string(gotBody) != string(body) {
        t.Errorf("body mismatch: %q", gotBody)
    }
    // truncated payloads must be rejected, not panic
    if _, _, _, ok := decodePayload(payload[:5]); ok {
        t.Error("truncated payload accepted")
    }
    if _, _, _, ok := decodePayload(nil); ok {
        t.Error("nil payload accepted")
    }
}
