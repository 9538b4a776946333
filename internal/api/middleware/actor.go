// Package middleware provides HTTP middleware for the messaging API.
package middleware

import (
	"strconv"

	"github.com/WeAreCode045/wphub-pro-sub001/internal/models"
	"github.com/labstack/echo/v4"
)

// Header names for actor identity. The dashboard gateway authenticates the
// user and forwards identity on every internal request; this service trusts
// the headers and never performs its own login.
const (
	HeaderActorID    = "X-Actor-Id"
	HeaderActorName  = "X-Actor-Name"
	HeaderActorEmail = "X-Actor-Email"
	HeaderActorAdmin = "X-Actor-Admin"
)

const actorContextKey = "actor"

// ActorContext extracts the acting user from the identity headers and stores
// it on the request context. Requests without X-Actor-Id carry no actor;
// handlers that need one reject those themselves.
func ActorContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderActorID)
			if id == "" {
				return next(c)
			}

			admin, _ := strconv.ParseBool(c.Request().Header.Get(HeaderActorAdmin))
			c.Set(actorContextKey, models.Actor{
				ID:    id,
				Name:  c.Request().Header.Get(HeaderActorName),
				Email: c.Request().Header.Get(HeaderActorEmail),
				Admin: admin,
			})
			return next(c)
		}
	}
}

// SetActor stores an actor on the request context.
func SetActor(c echo.Context, actor models.Actor) {
	c.Set(actorContextKey, actor)
}

// ActorFromContext returns the actor stored by ActorContext, if any.
func ActorFromContext(c echo.Context) (models.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(models.Actor)
	return actor, ok
}
