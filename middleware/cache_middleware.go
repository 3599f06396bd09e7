package middleware

import (
	"bufio"
	"bytes"
	"hash/fnv"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/log"
	"github.com/x-xyz/marketengine/service/cache"
	"github.com/x-xyz/marketengine/service/cache/provider"
)

const (
	cacheMiddlewarePfx = "httpCacheMiddleware"

	// HeaderXCache tells whether a response came from the cache
	HeaderXCache = "X-Cache"
)

var (
	cacheMiddlewareProvider provider.Provider

	once = sync.Once{}
)

// SetupCache sets the store shared by every CacheHttp middleware. Only the first call takes effect.
func SetupCache(p provider.Provider) {
	once.Do(func() {
		cacheMiddlewareProvider = p
	})
}

// Response is the cached response data structure.
type Response struct {
	Status int
	Value  []byte
	Header http.Header
}

// recorder tees the body written by the handler
type recorder struct {
	statusCode int
	body       bytes.Buffer
	http.ResponseWriter
}

func (w *recorder) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recorder) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *recorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}

func (w *recorder) status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

// cacheKey hashes the path with its query values sorted, so parameter order does not matter
func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, values := range params {
		sort.Strings(values)
	}

	hash := fnv.New64a()
	io.WriteString(hash, u.Path)
	io.WriteString(hash, "?")
	// Encode sorts by key
	io.WriteString(hash, params.Encode())
	return strconv.FormatUint(hash.Sum64(), 36)
}

// CacheHttp caches successful anonymous GET responses for ttl.
// Requests carrying an Authorization header always reach the handler.
func CacheHttp(ttl time.Duration) echo.MiddlewareFunc {
	if cacheMiddlewareProvider == nil {
		panic("need SetupCache before using CacheHttp")
	}

	cacheService := cache.New(cache.ServiceConfig{
		Ttl:   ttl,
		Pfx:   cacheMiddlewarePfx,
		Cache: cacheMiddlewareProvider,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet || req.Header.Get(echo.HeaderAuthorization) != "" {
				return next(c)
			}

			ctx := c.Get("ctx").(ctx.Ctx)
			key := cacheKey(req.URL)

			cached := Response{}
			err := cacheService.Get(ctx, key, &cached)
			if err == nil {
				for k, v := range cached.Header {
					c.Response().Header()[k] = v
				}
				c.Response().Header().Set(HeaderXCache, "HIT")
				c.Response().WriteHeader(cached.Status)
				_, err := c.Response().Write(cached.Value)
				return err
			} else if err != cache.ErrNotFound {
				ctx.WithFields(log.Fields{
					"err": err,
					"key": key,
				}).Error("failed to cacheService.Get")
			}

			c.Response().Header().Set(HeaderXCache, "MISS")
			rec := &recorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			if status := rec.status(); status >= 200 && status < 300 {
				header := c.Response().Header().Clone()
				header.Del(HeaderXCache)
				header.Del(echo.HeaderXRequestID)
				if err := cacheService.Set(ctx, key, Response{
					Status: status,
					Value:  rec.body.Bytes(),
					Header: header,
				}); err != nil {
					ctx.WithFields(log.Fields{
						"err": err,
						"key": key,
					}).Error("failed to cacheService.Set")
				}
			}

			return nil
		}
	}
}
