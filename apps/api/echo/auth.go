package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/school"
	"github.com/trezcool/shule/core/session"
)

const (
	contextTokenKey   = "userToken"
	contextSessionKey = "session"
)

// Claims represents the authorization claims transmitted via a JWT.
// StandardClaims.Id carries the session ID.
type Claims struct {
	jwt.StandardClaims
	Username string       `json:"username,omitempty"`
	Name     string       `json:"name,omitempty"`
	Role     session.Role `json:"role"`
}

type auth struct {
	config   middleware.JWTConfig
	delta    time.Duration
	sessions *session.Manager
	validate *validator.Validate
}

func newAuth(secretKey string, delta time.Duration, app *school.App) *auth {
	return &auth{
		config: middleware.JWTConfig{
			SigningKey:    []byte(secretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    contextTokenKey,
			Claims:        new(Claims),
		},
		delta:    delta,
		sessions: app.Sessions,
		validate: app.Validate,
	}
}

func (a *auth) jwt() echo.MiddlewareFunc {
	return middleware.JWTWithConfig(a.config)
}

func (a *auth) claimsOf(sess session.Session) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        sess.ID,
			Subject:   strconv.Itoa(sess.Identity.ID),
			ExpiresAt: now.Add(a.delta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: sess.Identity.Username,
		Name:     sess.Identity.Name,
		Role:     sess.Identity.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func (a *auth) GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(a.config.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(a.config.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

// sessionMiddleware rejects tokens whose session was closed.
func (a *auth) sessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			sess, err := a.sessions.Get(ctx.Request().Context(), claims.Id)
			if err != nil {
				if errors.Cause(err) == session.ErrNoSession {
					return errSessionClosed
				}
				return errors.Wrap(err, "loading session")
			}
			ctx.Set(contextSessionKey, sess)
			return next(ctx)
		}
	}
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (session.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(session.Session); ok {
		return sess, nil
	}
	return session.Session{}, errUnauthorized
}

func getContextIdentity(ctx echo.Context) (session.Identity, error) {
	sess, err := getContextSession(ctx)
	return sess.Identity, err
}

func registerAuthAPI(g *echo.Group, a *auth) {
	ag := g.Group("/auth")
	ag.POST("/login", a.login)

	// authed endpoints
	sg := ag.Group("", a.jwt(), a.sessionMiddleware())
	sg.POST("/logout", a.logout)
	sg.GET("/me", me)
	sg.GET("/permissions", permissions)
}

func (a *auth) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(a.validate); err != nil {
		return err
	}

	sess, err := a.sessions.Login(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}
	token, err := a.GenerateToken(a.claimsOf(sess))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Identity: sess.Identity})
}

func (a *auth) logout(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	if err := a.sessions.Logout(ctx.Request().Context(), sess.ID); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func me(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, id)
}

func permissions(ctx echo.Context) error {
	id, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, PermissionsResponse{Role: id.Role, Capabilities: session.CapabilitiesOf(id.Role)})
}

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token    string           `json:"token"`
		Identity session.Identity `json:"identity"`
	}

	PermissionsResponse struct {
		Role         session.Role         `json:"role"`
		Capabilities []session.Capability `json:"capabilities"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return validate.Struct(lr)
}
