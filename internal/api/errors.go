package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/existflow/angple/internal/model"
)

// ErrTokenMissing is returned by calls that need a valid bearer token
var ErrTokenMissing = errors.New("no valid API token")

// ErrNoData is returned when a successful response carries no data
var ErrNoData = errors.New("response carried no data")

// Error is a non-success HTTP response from the API
type Error struct {
	Status  int
	Message string
	Code    string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

// fallbackMessage is used when the error body carries no message
const fallbackMessage = "request failed"

func handleAPIError(r *http.Response, errBody []byte) *Error {
	apiErr := &Error{Status: r.StatusCode, Message: fallbackMessage}

	var body model.ErrorBody
	if err := json.Unmarshal(errBody, &body); err != nil {
		return apiErr
	}

	switch {
	case body.Error != "":
		apiErr.Message = body.Error
	case body.Message != "":
		apiErr.Message = body.Message
	}
	apiErr.Code = body.Code
	return apiErr
}

// IsUnauthorized reports whether err is a 401 from the API
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
