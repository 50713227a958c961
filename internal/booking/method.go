package booking

import (
    "strings"

    "github.com/iliyamo/court-reservation/internal/model"
)

// ClassifyMethod maps a gateway-reported source type onto the
// enumerated payment method. Unrecognized or empty types fall back
// to GCASH; the gateway sometimes omits the source type on paid
// payments and the record must still be written.
func ClassifyMethod(sourceType string) string {
    switch strings.ToLower(strings.TrimSpace(sourceType)) {
    case "gcash":
        return model.MethodGCash
    case "paymaya":
        return model.MethodMaya
    case "grab_pay":
        return model.MethodGrabPay
    case "card":
        return model.MethodBanking
    default:
        return model.MethodGCash
    }
}
