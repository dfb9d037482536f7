// Package session keeps the caller's role and flashed messages in a
// server-side session identified by an opaque cookie.
package session

import (
	"net/http"

	"github.com/dukcapil-minsel/suket/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CookieName = "suket"

	roleKey = "ROLE"

	// FlashError is the flash category rendered as an error alert.
	FlashError = "error"
)

// GetRole returns the role stored in the session, guest when none is.
func GetRole(c *gin.Context) model.Role {
	s := sessions.Default(c)
	if obj, ok := s.Get(roleKey).(string); ok {
		return model.ParseRole(obj)
	}
	return model.Guest
}

func SetRole(c *gin.Context, role model.Role) error {
	s := sessions.Default(c)
	s.Set(roleKey, string(role))
	return s.Save()
}

// AddFlash queues msg for the next rendered page.
func AddFlash(c *gin.Context, kind, msg string) error {
	s := sessions.Default(c)
	s.AddFlash(msg, kind)
	return s.Save()
}

// Flashes drains every queued message of the given kinds.
func Flashes(c *gin.Context, kinds ...string) (map[string][]string, error) {
	s := sessions.Default(c)
	out := make(map[string][]string)
	for _, kind := range kinds {
		for _, v := range s.Flashes(kind) {
			if msg, ok := v.(string); ok {
				out[kind] = append(out[kind], msg)
			}
		}
	}
	if len(out) == 0 {
		return out, nil
	}
	return out, s.Save()
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return s.Save()
}
