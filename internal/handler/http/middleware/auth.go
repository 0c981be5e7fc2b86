package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/facility-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/facility-attendance-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type identityKey struct{}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, user.ErrInvalidToken)
				return
			}

			identity, err := IdentityFromClaims(claims)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		}
		return http.HandlerFunc(hfn)
	}
}

// IdentityFromClaims builds the caller identity from access token claims.
func IdentityFromClaims(claims map[string]interface{}) (user.Identity, error) {
	roleStr, _ := claims["role"].(string)
	if strings.TrimSpace(roleStr) == "" {
		return user.Identity{}, user.ErrRoleMissing
	}
	role := user.Role(roleStr)
	if _, known := user.RolePermissions[role]; !known {
		return user.Identity{}, user.ErrUnknownRole
	}

	identity := user.Identity{
		UserID:        stringClaim(claims, "user_id"),
		Name:          stringClaim(claims, "name"),
		Role:          role,
		EmployeeID:    optionalClaim(claims, "employee_id"),
		AssignedStore: optionalClaim(claims, "assigned_store"),
	}

	switch stores := claims["stores"].(type) {
	case []interface{}:
		for _, s := range stores {
			if code, ok := s.(string); ok && strings.TrimSpace(code) != "" {
				identity.Stores = append(identity.Stores, strings.TrimSpace(code))
			}
		}
	case []string:
		identity.Stores = append(identity.Stores, stores...)
	}

	return identity, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	v, _ := claims[key].(string)
	return v
}

func optionalClaim(claims map[string]interface{}, key string) *string {
	v, ok := claims[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

func WithIdentity(ctx context.Context, identity user.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity stored by AuthRequired.
func IdentityFromContext(ctx context.Context) (user.Identity, error) {
	identity, ok := ctx.Value(identityKey{}).(user.Identity)
	if !ok {
		return user.Identity{}, user.ErrMissingIdentity
	}
	return identity, nil
}
