// Package actor carries the authenticated caller through a gin request.
package actor

import "github.com/gin-gonic/gin"

const contextKey = "postboard.actor"

// Actor is the user on whose behalf a request runs.
type Actor struct {
	ID        uint
	Username  string
	SessionID string
}

// Set stores the actor on the request context.
func Set(c *gin.Context, a Actor) {
	c.Set(contextKey, a)
}

// FromContext returns the actor stored by Set.
func FromContext(c *gin.Context) (Actor, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Actor{}, false
	}
	a, ok := v.(Actor)
	return a, ok
}
