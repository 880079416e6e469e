package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/classdesk/actions"
	"github.com/trezcool/classdesk/core"
	"github.com/trezcool/classdesk/core/session"
	"github.com/trezcool/classdesk/core/user"
)

const (
	contextTokenKey = "userToken"
	contextUserKey  = "user"
	tokenAudience   = "ClassDesk"
)

// Claims represents the authorization claims transmitted via a JWT.
// Only Subject is trusted: the user is reloaded from the store on every request.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64  `json:"oriat,omitempty"`
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	IsStudent    bool   `json:"is_student,omitempty"`
	IsTeacher    bool   `json:"is_teacher,omitempty"`
}

func (s *Server) userClaims(usr user.User, origIat ...int64) *Claims {
	now := time.Now()
	nownix := now.Unix()

	oriat := nownix
	if len(origIat) > 0 {
		oriat = origIat[0]
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    s.conf.AppName,
			Subject:   usr.ID,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(s.conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Name:         usr.Name,
		Email:        usr.Email,
		IsStudent:    usr.IsStudent(),
		IsTeacher:    usr.IsTeacher(),
	}
}

// GenerateToken returns a signed JWT for usr. origIat keeps the refresh window of a refreshed token.
func (s *Server) GenerateToken(usr user.User, origIat ...int64) (string, error) {
	method := jwt.GetSigningMethod(s.jwtConfig.SigningMethod)
	token := jwt.NewWithClaims(method, s.userClaims(usr, origIat...))

	ss, err := token.SignedString(s.jwtConfig.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (s *Server) parseToken(raw string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.jwtConfig.SigningMethod {
			return nil, errors.Errorf("unexpected jwt signing method=%v", t.Header["alg"])
		}
		return s.jwtConfig.SigningKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errUnauthorized
	}
	return claims, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextUser(ctx echo.Context) (user.User, bool) {
	usr, ok := ctx.Get(contextUserKey).(user.User)
	return usr, ok
}

// setSession loads the claims subject and attaches it to the echo and request contexts.
func (s *Server) setSession(ctx echo.Context, claims Claims) error {
	usr, err := s.deps.Users.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		if core.IsNotFound(err) {
			return errUnauthorized
		}
		return errors.Wrap(err, "finding user by ID")
	}

	ctx.Set(contextUserKey, usr)
	req := ctx.Request()
	sess := session.Session{User: usr, IssuedAt: time.Unix(claims.IssuedAt, 0).UTC()}
	ctx.SetRequest(req.WithContext(session.NewContext(req.Context(), sess)))
	return nil
}

func (s *Server) refreshToken(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}
	usr, ok := getContextUser(ctx)
	if !ok {
		return "", errUnauthorized
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(s.conf.Server.JWTRefreshExpirationDelta)
	if time.Now().After(expTime) {
		return "", errRefreshExpired
	}

	token, err := s.GenerateToken(usr, claims.OrigIssuedAt)
	return token, errors.Wrap(err, "generating token")
}

type authApi struct {
	srv  *Server
	acts *actions.Actions
}

func registerAuthAPI(g *echo.Group, srv *Server, authed []echo.MiddlewareFunc) {
	api := authApi{srv: srv, acts: srv.deps.Actions}

	g.POST("/login", api.login)

	ag := g.Group("", authed...)
	ag.GET("/user/:id", api.retrieveUser)
	ag.POST("/token-refresh", api.refreshToken)
}

type (
	LoginResponse struct {
		User  *user.User `json:"user"`
		Token string     `json:"token,omitempty"`
		Error string     `json:"error,omitempty"`
	}

	UserResponse struct {
		User  *user.User `json:"user"`
		Error string     `json:"error,omitempty"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}
)

// loginFailed is the only answer to a rejected login, whatever the reason.
var loginFailed = LoginResponse{Error: "Invalid email or password"}

func (api *authApi) login(ctx echo.Context) error {
	var creds user.LoginCredentials
	if err := ctx.Bind(&creds); err != nil {
		return ctx.JSON(http.StatusUnauthorized, loginFailed)
	}
	if err := creds.Validate(api.srv.deps.Validate); err != nil {
		return ctx.JSON(http.StatusUnauthorized, loginFailed)
	}

	usr, err := api.srv.deps.Users.Authenticate(ctx.Request().Context(), creds)
	if err != nil {
		if errors.Cause(err) == user.ErrInvalidCredentials {
			return ctx.JSON(http.StatusUnauthorized, loginFailed)
		}
		return errors.Wrap(err, "authenticating")
	}

	token, err := api.srv.GenerateToken(usr)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{User: &usr, Token: token})
}

// retrieveUser answers 404 for unknown ids and for other users' ids requested by a student.
func (api *authApi) retrieveUser(ctx echo.Context) error {
	id := ctx.Param("id")
	reqCtx := ctx.Request().Context()

	if sess, err := session.Require(reqCtx); err != nil || !sess.IsSelfOrTeacher(id) {
		return ctx.JSON(http.StatusNotFound, UserResponse{})
	}

	res := api.acts.GetUserByID(reqCtx, id)
	switch {
	case res.Kind == actions.KindNotFound:
		return ctx.JSON(http.StatusNotFound, UserResponse{})
	case !res.Success:
		return ctx.JSON(statusOf(res.Kind, http.StatusOK), UserResponse{Error: res.Error})
	}
	return ctx.JSON(http.StatusOK, UserResponse{User: res.Data})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := api.srv.refreshToken(ctx)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}
