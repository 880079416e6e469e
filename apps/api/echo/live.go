package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	livesvc "github.com/trezcool/classdesk/services/live"
)

type liveApi struct {
	hub *livesvc.Hub
}

// registerLiveAPI serves the revalidation feed. Browsers cannot set headers on websocket
// handshakes, so the token is read from the query string.
func registerLiveAPI(g *echo.Group, srv *Server, hub *livesvc.Hub) {
	if hub == nil {
		return
	}
	api := liveApi{hub: hub}

	jwtConfig := srv.jwtConfig
	jwtConfig.TokenLookup = "query:token"
	g.GET("/live", api.serve, middleware.JWTWithConfig(jwtConfig), srv.sessionMiddleware)
}

func (api *liveApi) serve(ctx echo.Context) error {
	usr, ok := getContextUser(ctx)
	if !ok {
		return errUnauthorized
	}
	if err := api.hub.ServeWS(ctx.Response(), ctx.Request(), usr.ID); err != nil {
		if ctx.Response().Committed {
			ctx.Logger().Warn(err)
			return nil
		}
		return errors.Wrap(err, "serving live feed")
	}
	return nil
}
