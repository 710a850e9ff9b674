// Package session maps the request's cookie session to at most one
// authenticated identity.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	keyUserID   = "auth_user_id"
	keyUsername = "auth_username"
)

// Identity resolves the user bound to the request's session. Absence is a
// normal state, not an error.
func Identity(c *gin.Context) (uint, string, bool) {
	s := sessions.Default(c)
	id := readUint(s.Get(keyUserID))
	if id == 0 {
		return 0, "", false
	}
	username, _ := s.Get(keyUsername).(string)
	return id, username, true
}

// Establish binds the current session to the given user. Subsequent requests
// on the same session resolve to this identity until cleared.
func Establish(c *gin.Context, userID uint, username string) error {
	s := sessions.Default(c)
	s.Set(keyUserID, userID)
	s.Set(keyUsername, username)
	return s.Save()
}

// Clear unbinds the session's identity. Clearing an anonymous session is a
// no-op.
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	return s.Save()
}

func readUint(v interface{}) uint {
	switch id := v.(type) {
	case uint:
		return id
	case int:
		if id < 0 {
			return 0
		}
		return uint(id)
	case int64:
		if id < 0 {
			return 0
		}
		return uint(id)
	case float64:
		if id < 0 {
			return 0
		}
		return uint(id)
	default:
		return 0
	}
}
