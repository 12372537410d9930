package controller

import (
	"github.com/gin-gonic/gin"
)

// IndexController serves the landing and static info pages.
type IndexController struct {
	BaseController
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.home)
	g.GET("/home/", a.home)
	g.GET("/about/", a.about)
}

func (a *IndexController) home(c *gin.Context) {
	html(c, "home.html", "Home", nil)
}

func (a *IndexController) about(c *gin.Context) {
	html(c, "about.html", "About", nil)
}
