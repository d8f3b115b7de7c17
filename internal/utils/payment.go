package utils

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"

    "github.com/google/uuid"
)

// NewOrderRef returns an opaque payment order reference handed to the
// hosted checkout widget.  The "order_" prefix mirrors the provider's
// reference format so client integrations stay unchanged.
func NewOrderRef() string {
    return "order_" + uuid.NewString()
}

// SignPayment computes the signature the payment provider attaches to
// a successful checkout: HMAC-SHA256 over "orderRef|paymentID" keyed
// with the server-held secret, hex encoded.
func SignPayment(secret, orderRef, paymentID string) string {
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(orderRef + "|" + paymentID))
    return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature recomputes the expected signature and compares
// it in constant time.  Only a matching signature may transition a
// booking to confirmed.
func VerifyPaymentSignature(secret, orderRef, paymentID, signature string) bool {
    want := SignPayment(secret, orderRef, paymentID)
    return hmac.Equal([]byte(want), []byte(signature))
}
