package handlers

import (
	"net"
	"strings"

	"github.com/albertogalvisvml/labelpdfapp/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const notConfigured = "not configured"

func (h *LabelHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.ErrorResponse{Error: message})
}

// WithTrustedProxies lists the proxies (IPs or CIDRs) whose X-Forwarded-Proto
// and X-Forwarded-Host headers are honoured when building PDF URLs.
func (h *LabelHandler) WithTrustedProxies(proxies []string) *LabelHandler {
	h.trustedProxies = h.trustedProxies[:0]
	for _, p := range proxies {
		network, err := parseProxy(p)
		if err != nil {
			h.logger.Warn("Ignoring invalid trusted proxy", zap.String("proxy", p), zap.Error(err))
			continue
		}
		h.trustedProxies = append(h.trustedProxies, network)
	}
	return h
}

func parseProxy(p string) (*net.IPNet, error) {
	p = strings.TrimSpace(p)
	if !strings.Contains(p, "/") {
		ip := net.ParseIP(p)
		if ip == nil {
			return nil, &net.ParseError{Type: "IP address", Text: p}
		}
		bits := 128
		if ip.To4() != nil {
			ip = ip.To4()
			bits = 32
		}
		return &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)}, nil
	}
	_, network, err := net.ParseCIDR(p)
	return network, err
}

func (h *LabelHandler) trustsPeer(c *gin.Context) bool {
	ip := net.ParseIP(c.RemoteIP())
	if ip == nil {
		return false
	}
	for _, network := range h.trustedProxies {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// requestBaseURL rebuilds "<scheme>://<host>/" for the current request.
// Forwarded headers count only when the direct peer is a trusted proxy.
func (h *LabelHandler) requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	host := c.Request.Host

	if h.trustsPeer(c) {
		if proto := strings.ToLower(firstHeaderValue(c.GetHeader("X-Forwarded-Proto"))); proto == "http" || proto == "https" {
			scheme = proto
		}
		if fwd := firstHeaderValue(c.GetHeader("X-Forwarded-Host")); fwd != "" {
			host = fwd
		}
	}

	return scheme + "://" + host + "/"
}

func firstHeaderValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

func calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != "healthy" && status != notConfigured {
			return "unhealthy"
		}
	}
	return "healthy"
}
