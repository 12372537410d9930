// Package session wraps gin-contrib/sessions with typed accessors for the
// logged-in clinician and the one-shot flash notices rendered on every page.
package session

import (
	"encoding/gob"

	"gerisafe/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	loginUserKey = "LOGIN_USER"
	flashesKey   = "FLASHES"
)

func init() {
	gob.Register(model.User{})
	gob.Register([]string{})
}

func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserKey, *user)
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: maxAge,
	})
	return s.Save()
}

func GetLoginUser(c *gin.Context) *model.User {
	s := sessions.Default(c)
	if obj := s.Get(loginUserKey); obj != nil {
		if user, ok := obj.(model.User); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

// ClearLoginUser ends the authenticated session. The session itself is kept
// alive so the logout notice can still be flashed on the next page.
func ClearLoginUser(c *gin.Context) error {
	s := sessions.Default(c)
	s.Delete(loginUserKey)
	return s.Save()
}

// AddFlash queues a notice shown once on the next rendered page.
func AddFlash(c *gin.Context, msg string) error {
	s := sessions.Default(c)
	flashes, _ := s.Get(flashesKey).([]string)
	s.Set(flashesKey, append(flashes, msg))
	return s.Save()
}

// PopFlashes returns queued notices and removes them from the session.
func PopFlashes(c *gin.Context) []string {
	s := sessions.Default(c)
	flashes, _ := s.Get(flashesKey).([]string)
	if len(flashes) > 0 {
		s.Delete(flashesKey)
		_ = s.Save()
	}
	return flashes
}
