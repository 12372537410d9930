// Package controller provides the HTTP handlers for the GeriSafe pages:
// landing, registration and login, catalog browsing and note boards.
package controller

import (
	"net/http"
	"net/url"

	"gerisafe/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication gate shared by protected
// routes.
type BaseController struct{}

// checkLogin redirects anonymous visitors to the login page, carrying the
// originally requested path so login can return them there.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		next := url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, "/login/?next="+next)
		c.Abort()
	} else {
		c.Next()
	}
}
