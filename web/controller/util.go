package controller

import (
	"net"
	"net/http"
	"strings"

	"gerisafe/config"
	"gerisafe/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// html renders a template with the shared page context: title, version,
// the logged-in user (if any) and pending flash notices.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["cur_ver"] = config.GetVersion()
	data["user"] = session.GetLoginUser(c)
	data["flashes"] = session.PopFlashes(c)
	c.HTML(http.StatusOK, name, data)
}

// ErrorPage renders the generic not-found page. It is served with status
// 200 rather than 404; unknown routes and unknown catalog entries look the
// same to the browser.
func ErrorPage(c *gin.Context) {
	html(c, "error_page.html", "Not Found", nil)
}

// redirectWithFlash queues a notice and redirects.
func redirectWithFlash(c *gin.Context, location, msg string) {
	_ = session.AddFlash(c, msg)
	c.Redirect(http.StatusFound, location)
}

// externalURL builds an absolute URL for links placed in outbound email.
func externalURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	host := c.GetHeader("X-Forwarded-Host")
	if host == "" {
		host = c.Request.Host
	}
	return scheme + "://" + host + path
}
