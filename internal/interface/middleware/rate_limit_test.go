package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func serveLimited(mw gin.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(req.Method, "/limited", mw, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_FailsOpen(t *testing.T) {
	t.Run("nil client disables the limiter", func(t *testing.T) {
		mw := RateLimit(nil, 1, time.Minute, KeyByIP(), nil)
		for i := 0; i < 5; i++ {
			w := serveLimited(mw, httptest.NewRequest(http.MethodGet, "/limited", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("unreachable redis lets requests through", func(t *testing.T) {
		// nothing listens here; every script call errors out
		rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
		defer func() { _ = rdb.Close() }()

		mw := RateLimit(rdb, 1, time.Minute, KeyByIP(), nil)
		for i := 0; i < 3; i++ {
			w := serveLimited(mw, httptest.NewRequest(http.MethodGet, "/limited", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestRateLimit_AllowBypass(t *testing.T) {
	// the allow func short-circuits before redis is ever consulted
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	defer func() { _ = rdb.Close() }()

	allowAll := func(*gin.Context) bool { return true }
	mw := RateLimit(rdb, 1, time.Minute, KeyByIP(), allowAll)

	w := serveLimited(mw, httptest.NewRequest(http.MethodGet, "/limited", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestKeyFuncs(t *testing.T) {
	r := gin.New()
	var ipKey, pathKey, userKey, anonKey string
	r.GET("/things/:id", func(c *gin.Context) {
		c.Set("real_ip", "203.0.113.9")
		ipKey = KeyByIP()(c)
		pathKey = KeyByIPAndPath()(c)
		anonKey = KeyByUserID()(c)
		c.Set(CtxUserIDKey, "u-1")
		userKey = KeyByUserID()(c)
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/42", nil))

	assert.Equal(t, "rl:ip:203.0.113.9", ipKey)
	// keyed by the route pattern, not the concrete path
	assert.Equal(t, "rl:path:/things/:id:ip:203.0.113.9", pathKey)
	assert.Equal(t, "rl:user:u-1", userKey)
	assert.Equal(t, "rl:user:anon:ip:203.0.113.9", anonKey)
}

func TestAllowPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.0.0.5", true},
		{"192.168.1.20", true},
		{"203.0.113.9", false},
		{"", false},
	}

	allow := AllowPrivateIP()
	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.ip != "" {
				c.Set("real_ip", tt.ip)
			}
			assert.Equal(t, tt.want, allow(c))
		})
	}
}
