package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Empty(t, r.prefix)
	assert.Empty(t, r.registrars)
}

func TestRouterWithPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithPrefix("/internal"))

	g := NewDomainGroup("test", "/test")
	g.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(g).Setup()

	w := serve(engine, http.MethodGet, "/internal/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/test/ping").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("store", "/store")
		assert.Equal(t, "store", g.Name())
		assert.Equal(t, "/store", g.Prefix())
	})

	t.Run("registers each method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "list") }).
			POST("/items", func(c *gin.Context) { c.String(http.StatusCreated, "created") }).
			DELETE("/items/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })
		g.RegisterRoutes(&engine.RouterGroup)

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/test/items").Code)
		assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/test/items").Code)
		w := serve(engine, http.MethodDelete, "/test/items/42")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", w.Body.String())
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		g.RegisterRoutes(&engine.RouterGroup)

		assert.Equal(t, "applied", serve(engine, http.MethodGet, "/test/items").Header().Get("X-Test-Middleware"))
	})

	t.Run("subgroups inherit middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("store", "/store").Use(func(c *gin.Context) {
			c.Header("X-Parent", "yes")
			c.Next()
		})
		news := g.Group("newsletter", "/newsletter")
		news.POST("/subscribe", func(c *gin.Context) {
			c.String(http.StatusOK, "subscribed")
		})
		g.RegisterRoutes(&engine.RouterGroup)

		w := serve(engine, http.MethodPost, "/store/newsletter/subscribe")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "yes", w.Header().Get("X-Parent"))
	})
}

func TestDomainGroup_AllowPreflight(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("admin", "/admin").AllowPreflight().Use(func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Header("X-Preflight", "seen")
		}
		c.Next()
	})
	g.GET("/brands", func(c *gin.Context) { c.String(http.StatusOK, "list") }).
		POST("/brands", func(c *gin.Context) { c.String(http.StatusOK, "create") })
	sub := g.Group("orders", "/orders")
	sub.POST("/:id/confirmation", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	g.RegisterRoutes(&engine.RouterGroup)

	w := serve(engine, http.MethodOptions, "/admin/brands")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "seen", w.Header().Get("X-Preflight"))

	assert.Equal(t, http.StatusNoContent, serve(engine, http.MethodOptions, "/admin/orders/1/confirmation").Code)
}
