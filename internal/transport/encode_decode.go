package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	perrors "github.com/vnykmshr/pantry/pkg/common/errors"
)

var errBadRequest = errors.New("bad request")

type checkRequest struct {
	Ingredients []string `json:"ingredients"`
	Allergens   []string `json:"allergens"`
	Consumer    string   `json:"consumer"`
}

type checkResponse struct {
	Contains bool     `json:"contains"`
	Matches  []string `json:"matches"`
}

type profileRequest struct {
	Consumer  string   `json:"-"`
	Allergens []string `json:"allergens"`
}

type profileResponse struct {
	Consumer  string   `json:"consumer"`
	Allergens []string `json:"allergens"`
}

type listProfilesResponse struct {
	Consumers []string `json:"consumers"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func decodeHealthRequest(c echo.Context) (interface{}, error) {
	return nil, nil
}

func decodeCheckRequest(c echo.Context) (interface{}, error) {
	var req checkRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %s", errBadRequest, err)
	}
	return req, nil
}

func decodeProfileRequest(c echo.Context) (interface{}, error) {
	return profileRequest{Consumer: c.Param("consumer")}, nil
}

func decodePutProfileRequest(c echo.Context) (interface{}, error) {
	var req profileRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %s", errBadRequest, err)
	}
	// An empty list clears the profile; a missing one is a client mistake.
	if req.Allergens == nil {
		return nil, fmt.Errorf("%w: allergens is required", errBadRequest)
	}
	req.Consumer = c.Param("consumer")
	return req, nil
}

func decodeListProfilesRequest(c echo.Context) (interface{}, error) {
	return nil, nil
}

// encodeResponse writes response as JSON, or a bare 204 when there is none
func encodeResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if response == nil {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(response)
}

// encodeEchoError encodes errors as a JSON body with a matching status code
func encodeEchoError(c echo.Context, err error) error {
	code := codeFrom(err)
	return c.JSON(code, map[string]interface{}{
		"error": err.Error(),
	})
}

// codeFrom casts a service error to an http.StatusCode
func codeFrom(err error) int {
	if errors.Is(err, errBadRequest) || perrors.IsValidationError(err) {
		return http.StatusBadRequest
	}

	if perrors.IsNotFound(err) {
		return http.StatusNotFound
	}

	if perrors.IsRetryable(err) {
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}
