package controller

import (
	"errors"
	"strings"

	"gerisafe/logger"
	"gerisafe/web/entity"
	"gerisafe/web/service"
	"gerisafe/web/session"

	"github.com/gin-gonic/gin"
)

// AuthController handles registration, email confirmation, login and
// logout.
type AuthController struct {
	BaseController

	userService    service.UserService
	settingService service.SettingService
	mail           service.Sender
}

func NewAuthController(g *gin.RouterGroup, mail service.Sender) *AuthController {
	a := &AuthController{mail: mail}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/register/", a.registerForm)
	g.POST("/register/", a.register)
	g.GET("/confirm_email/:token", a.confirmEmail)
	g.GET("/login/", a.loginForm)
	g.POST("/login/", a.login)
	g.GET("/logout/", a.checkLogin, a.logout)
}

func (a *AuthController) registerForm(c *gin.Context) {
	if session.IsLogin(c) {
		redirectWithFlash(c, "/", "Please logout before signing up.")
		return
	}
	html(c, "register.html", "Register", nil)
}

// register validates the form, mints the confirmation token and sends the
// confirmation email. No account exists until the link is followed.
func (a *AuthController) register(c *gin.Context) {
	if session.IsLogin(c) {
		redirectWithFlash(c, "/", "Please logout before signing up.")
		return
	}

	var form entity.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		redirectWithFlash(c, "/register/", "Please fill in all fields; passwords need at least 8 characters.")
		return
	}

	token, err := a.userService.Register(form.Name, form.Profession, form.Department, form.Email, form.Password)
	if errors.Is(err, service.ErrEmailTaken) {
		redirectWithFlash(c, "/register/", "Email already registered!")
		return
	} else if err != nil {
		logger.Warning("register err:", err)
		ErrorPage(c)
		return
	}

	link := externalURL(c, "/confirm_email/"+token)
	if err := service.SendConfirmation(a.mail, form.Email, link); err != nil {
		// fire and forget; the user can re-register if the mail never arrives
		logger.Warningf("confirmation email to %s failed: %v", form.Email, err)
	}

	redirectWithFlash(c, "/login/", "Confirmation email sent. Please click on sent link to confirm your account registration.")
}

func (a *AuthController) confirmEmail(c *gin.Context) {
	token := c.Param("token")

	user, err := a.userService.ConfirmRegistration(token)
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		redirectWithFlash(c, "/register/", "Token has expired, please register again.")
	case errors.Is(err, service.ErrTokenInvalid):
		redirectWithFlash(c, "/register/", "Invalid confirmation link, please register again.")
	case errors.Is(err, service.ErrEmailTaken):
		redirectWithFlash(c, "/login/", "Registration already confirmed. You can login to your account.")
	case err != nil:
		logger.Warning("confirm email err:", err)
		ErrorPage(c)
	default:
		logger.Infof("registration confirmed for %s", user.Email)
		redirectWithFlash(c, "/login/", "Registration completed. You can now login to your account.")
	}
}

func (a *AuthController) loginForm(c *gin.Context) {
	if session.IsLogin(c) {
		redirectWithFlash(c, "/", "Already Logged in!")
		return
	}
	html(c, "login.html", "Login", gin.H{"next": c.Query("next")})
}

func (a *AuthController) login(c *gin.Context) {
	if session.IsLogin(c) {
		redirectWithFlash(c, "/", "Already Logged in!")
		return
	}

	var form entity.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		_ = session.AddFlash(c, "Invalid email or password")
		html(c, "login.html", "Login", gin.H{"next": form.Next})
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %q", form.Email, getRemoteIp(c))
		_ = session.AddFlash(c, "Invalid email or password")
		html(c, "login.html", "Login", gin.H{"next": form.Next})
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("unable to get session max age:", err)
	} else {
		_ = session.SetMaxAge(c, sessionMaxAge*60)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
		ErrorPage(c)
		return
	}
	logger.Infof("%s logged in, IP: %s", user.Email, getRemoteIp(c))

	target := "/"
	if strings.HasPrefix(form.Next, "/") && !strings.HasPrefix(form.Next, "//") {
		target = form.Next
	}
	redirectWithFlash(c, target, "Logged in succesfully.")
}

func (a *AuthController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out", user.Email)
	}
	if err := session.ClearLoginUser(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	redirectWithFlash(c, "/", "Logged out succesfully.")
}
