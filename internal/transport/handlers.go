package transport

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/labstack/echo/v4"
)

type decodeRequestFunc func(c echo.Context) (interface{}, error)

type encodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

type errorEncoderFunc func(c echo.Context, err error) error

// NewUnaryHandler creates and returns an echo.HandlerFunc that decodes the
// request, invokes the endpoint and encodes its response
func NewUnaryHandler(e endpoint.Endpoint, dec decodeRequestFunc, enc encodeResponseFunc, errorEncoder errorEncoderFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		w := c.Response().Writer

		req, err := dec(c)
		if err != nil {
			return errorEncoder(c, err)
		}

		resp, err := e(ctx, req)
		if err != nil {
			return errorEncoder(c, err)
		}

		if err := enc(ctx, w, resp); err != nil {
			return errorEncoder(c, err)
		}
		return nil
	}
}
