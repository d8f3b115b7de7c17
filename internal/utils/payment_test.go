package utils

import (
    "strings"
    "testing"
)

func TestNewOrderRef(t *testing.T) {
    a := NewOrderRef()
    b := NewOrderRef()
    if !strings.HasPrefix(a, "order_") {
        t.Fatalf("order ref %q missing prefix", a)
    }
    if a == b {
        t.Fatal("order refs must be unique")
    }
}

func TestVerifyPaymentSignature(t *testing.T) {
    const secret = "test-secret"
    sig := SignPayment(secret, "order_abc", "pay_123")
    if !VerifyPaymentSignature(secret, "order_abc", "pay_123", sig) {
        t.Fatal("valid signature rejected")
    }
    if VerifyPaymentSignature(secret, "order_abc", "pay_999", sig) {
        t.Fatal("signature accepted for a different payment id")
    }
    if VerifyPaymentSignature(secret, "order_xyz", "pay_123", sig) {
        t.Fatal("signature accepted for a different order ref")
    }
    if VerifyPaymentSignature("other-secret", "order_abc", "pay_123", sig) {
        t.Fatal("signature accepted under a different secret")
    }
    if VerifyPaymentSignature(secret, "order_abc", "pay_123", sig+"00") {
        t.Fatal("tampered signature accepted")
    }
}
