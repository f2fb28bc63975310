package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stocklens/warehouse-core/internal/app/errors"
	"github.com/stocklens/warehouse-core/internal/app/models"
	"github.com/stocklens/warehouse-core/internal/app/pkg"
)

// ActorClaims is the token payload the upstream identity provider issues.
// The engine only consumes it for attribution; permission resolution happens
// before the token is minted.
type ActorClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(jwtSecret)}
}

// RequireActor resolves the bearer token into a models.Actor and stores it in
// locals for handlers to attribute writes to.
func (m *AuthMiddleware) RequireActor(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	if token == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError())
	}
	token = strings.Replace(token, "Bearer ", "", 1)

	claims := &ActorClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewUnauthorizedError("Unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Invalid token"))
	}

	actorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Invalid token subject"))
	}

	c.Locals("actor", models.Actor{
		ID:       actorID,
		Username: claims.Username,
		Role:     claims.Role,
	})

	return c.Next()
}

// ActorFromContext returns the actor placed in locals by RequireActor.
func ActorFromContext(c *fiber.Ctx) models.Actor {
	if actor, ok := c.Locals("actor").(models.Actor); ok {
		return actor
	}
	return models.Actor{}
}
