package netinfo

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequestForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.RemoteAddr = "10.0.0.2:4567"

	info := FromRequest(req)
	assert.Equal(t, "203.0.113.7", info.IP)
	assert.Equal(t, "v4", info.IPVersion)
}

func TestFromRequestRealIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Real-IP", "2001:db8::1")
	req.RemoteAddr = "10.0.0.2:4567"

	info := FromRequest(req)
	assert.Equal(t, "2001:db8::1", info.IP)
	assert.Equal(t, "v6", info.IPVersion)
}

func TestFromRequestRemoteAddrFallback(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.9:8080"

	info := FromRequest(req)
	assert.Equal(t, "192.0.2.9", info.IP)
	assert.Equal(t, "v4", info.IPVersion)
}

func TestVersionUnparseable(t *testing.T) {
	assert.Equal(t, "", Version("not-an-ip"))
}
