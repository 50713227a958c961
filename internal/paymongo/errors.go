package paymongo

import (
    "encoding/json"
    "fmt"
)

// APIError carries the provider's error detail for a non-success
// response. Handlers surface Detail to the client inside a
// {success:false, message} envelope rather than an HTTP error.
type APIError struct {
    StatusCode int
    Code       string
    Detail     string
}

func (e *APIError) Error() string {
    if e.Detail != "" {
        return fmt.Sprintf("paymongo: %s (%s, http %d)", e.Detail, e.Code, e.StatusCode)
    }
    return fmt.Sprintf("paymongo: http %d", e.StatusCode)
}

// parseAPIError decodes the provider's {"errors":[{code,detail}]}
// body. Malformed bodies still yield an APIError with the status code
// so every non-2xx response surfaces as a gateway error.
func parseAPIError(status int, body []byte) *APIError {
    var payload struct {
        Errors []struct {
            Code   string `json:"code"`
            Detail string `json:"detail"`
        } `json:"errors"`
    }
    apiErr := &APIError{StatusCode: status}
    if err := json.Unmarshal(body, &payload); err == nil && len(payload.Errors) > 0 {
        apiErr.Code = payload.Errors[0].Code
        apiErr.Detail = payload.Errors[0].Detail
    }
    return apiErr
}
