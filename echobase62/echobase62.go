// Package echobase62 exposes the base62 codec over HTTP using the Echo
// framework (github.com/labstack/echo/v4).
//
// Routes, relative to wherever the API is registered:
//
//	GET  /int/encode/:value   decimal uint64 -> {"value":..,"encoded":..}
//	GET  /int/decode/:text    base62 text    -> {"value":..,"encoded":..}
//	POST /bytes/encode        raw body       -> {"encoded":..,"length":..}
//	POST /bytes/decode        {"text":..}    -> raw bytes
//
// Malformed input of any kind is answered with 400; bodies larger than
// Config.MaxBodyBytes with 413.
package echobase62

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/presbrey/base62kit/base62"
)

// Router is satisfied by *echo.Echo and *echo.Group.
type Router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Config holds configuration for the API handlers
type Config struct {
	// MaxBodyBytes bounds the request body of both POST routes
	MaxBodyBytes int64
}

// DefaultConfig provides default configuration
func DefaultConfig() Config {
	return Config{MaxBodyBytes: 1 << 20}
}

// IntResponse is returned by the integer routes.
type IntResponse struct {
	Value   uint64 `json:"value"`
	Encoded string `json:"encoded"`
}

// BytesResponse is returned by /bytes/encode.
type BytesResponse struct {
	Encoded string `json:"encoded"`
	Length  int    `json:"length"`
}

// DecodeRequest is the body accepted by /bytes/decode.
type DecodeRequest struct {
	Text string `json:"text" validate:"required,min=2,alphanum"`
}

// API serves the codec routes.
type API struct {
	config Config
}

// New returns an API using config, falling back to defaults for zero fields.
func New(config Config) *API {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	return &API{config: config}
}

// Register mounts the API routes on r.
func (a *API) Register(r Router) {
	r.GET("/int/encode/:value", a.EncodeInt)
	r.GET("/int/decode/:text", a.DecodeInt)
	r.POST("/bytes/encode", a.EncodeBytes)
	r.POST("/bytes/decode", a.DecodeBytes)
}

// EncodeInt handles GET /int/encode/:value.
func (a *API) EncodeInt(c echo.Context) error {
	v, err := strconv.ParseUint(c.Param("value"), 10, 64)
	if err != nil {
		observe(opEncodeInt, err)
		return echo.NewHTTPError(http.StatusBadRequest, "value must be a decimal uint64")
	}
	observe(opEncodeInt, nil)
	return c.JSON(http.StatusOK, IntResponse{Value: v, Encoded: base62.EncodeUint64(v)})
}

// DecodeInt handles GET /int/decode/:text.
func (a *API) DecodeInt(c echo.Context) error {
	text := c.Param("text")
	v, err := base62.DecodeUint64(text)
	observe(opDecodeInt, err)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, IntResponse{Value: v, Encoded: text})
}

// EncodeBytes handles POST /bytes/encode.
func (a *API) EncodeBytes(c echo.Context) error {
	a.limitBody(c)
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		observe(opEncodeBytes, err)
		if isTooLarge(err) {
			return errBodyTooLarge
		}
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	encoded := base62.EncodeBytes(data)
	observe(opEncodeBytes, nil)
	PayloadBytes.WithLabelValues(opEncodeBytes).Observe(float64(len(data)))
	return c.JSON(http.StatusOK, BytesResponse{Encoded: encoded, Length: len(data)})
}

// DecodeBytes handles POST /bytes/decode.
func (a *API) DecodeBytes(c echo.Context) error {
	a.limitBody(c)
	req := new(DecodeRequest)
	if err := c.Bind(req); err != nil {
		observe(opDecodeBytes, err)
		if isTooLarge(err) {
			return errBodyTooLarge
		}
		return err
	}
	if err := c.Validate(req); err != nil {
		observe(opDecodeBytes, err)
		return err
	}

	data, err := base62.DecodeBytes(req.Text)
	observe(opDecodeBytes, err)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	PayloadBytes.WithLabelValues(opDecodeBytes).Observe(float64(len(data)))
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, data)
}

var errBodyTooLarge = echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request body too large")

// limitBody caps the request body at MaxBodyBytes.
func (a *API) limitBody(c echo.Context) {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, a.config.MaxBodyBytes)
}

// isTooLarge reports whether err, possibly wrapped by echo's binder, came
// from an exhausted MaxBytesReader.
func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// Setup wires the validator and the API routes into e.
func Setup(e *echo.Echo, config Config) *API {
	if e == nil {
		panic("echobase62.Setup: received nil Echo instance")
	}
	e.Validator = NewValidator()
	api := New(config)
	api.Register(e)
	return api
}
