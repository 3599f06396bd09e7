package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/base/metrics"
	"github.com/x-xyz/marketengine/domain"
)

// GoMiddleware represent the data-struct for middleware
type GoMiddleware struct {
	// another stuff , may be needed by middleware
}

// InitMiddleware initialize the middleware
func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{}
}

// CORS will handle the CORS middleware
func (m *GoMiddleware) CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		return next(c)
	}
}

// AddContext puts a ctx.Ctx tagged with the request id on the echo context
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			cont := ctx.WithValue(ctx.From(c.Request().Context()), "requestID", c.Response().Header().Get(echo.HeaderXRequestID))
			c.Set("ctx", cont)
			return next(c)
		}
	}
}

// ResponseLogger logs every response, at warn for 4xx and error for 5xx
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	met := metrics.New("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			elapsed := time.Since(start)
			met.BumpHistogram("request.time", float64(elapsed)/float64(time.Millisecond),
				"method", req.Method, "path", c.Path(), "status", strconv.Itoa(res.Status/100)+"xx")

			fields := log.Fields{
				"ms":         elapsed.Seconds() * 1000,
				"httpStatus": res.Status,
				"remoteIP":   c.RealIP(),
				"uri":        req.URL.Path,
				"route":      c.Path(),
				"httpMethod": req.Method,
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
			}
			if user, ok := c.Get("user").(domain.UserId); ok {
				fields["user"] = user
			}

			logger := c.Get("ctx").(ctx.Ctx).WithFields(fields)
			switch {
			case res.Status >= 500:
				logger.WithField("nextErr", err).Error("response")
			case res.Status >= 400:
				logger.WithField("nextErr", err).Warn("response")
			default:
				logger.Info("response")
			}
			return nil
		}
	}
}
