package paymongo

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "errors"
    "strings"
)

// Signature verification errors.
var (
    ErrMissingSignature = errors.New("paymongo: missing signature header")
    ErrBadSignature     = errors.New("paymongo: signature mismatch")
)

// VerifySignature checks the Paymongo-Signature header against the
// raw request payload. The header has the form
// "t=<unix>,te=<hex>,li=<hex>"; the expected value is
// HMAC-SHA256(secret, "<t>.<payload>") hex-encoded, delivered in te
// for test-mode webhooks and li for live-mode ones. Either slot may
// match. Payloads that fail verification must not be trusted.
func VerifySignature(header string, payload []byte, secret string) error {
    header = strings.TrimSpace(header)
    if header == "" {
        return ErrMissingSignature
    }
    var ts string
    candidates := make([]string, 0, 2)
    for _, part := range strings.Split(header, ",") {
        kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
        if len(kv) != 2 {
            continue
        }
        switch kv[0] {
        case "t":
            ts = kv[1]
        case "te", "li":
            if kv[1] != "" {
                candidates = append(candidates, kv[1])
            }
        }
    }
    if ts == "" || len(candidates) == 0 {
        return ErrMissingSignature
    }

    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(ts))
    mac.Write([]byte("."))
    mac.Write(payload)
    expected := hex.EncodeToString(mac.Sum(nil))

    for _, sig := range candidates {
        if hmac.Equal([]byte(expected), []byte(sig)) {
            return nil
        }
    }
    return ErrBadSignature
}
