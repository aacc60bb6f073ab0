// Package identity extracts the caller's identity from the verified JWT in
// the request context. The token is minted by the external identity provider;
// the core trusts its claims on every call and only performs role checks.
package identity

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/worklane-hq/worklane-backend-go/internal/domain/user"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       user.Role
	TeamID     string
}

type actorKey struct{}

// FromContext resolves the Actor, preferring a directly injected Actor (tests,
// internal calls) and falling back to jwtauth claims.
func FromContext(ctx context.Context) (Actor, error) {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor, nil
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Actor{}, fmt.Errorf("employee_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Actor{}, fmt.Errorf("role claim is missing or invalid")
	}

	// team_id is optional: admins and unassigned employees carry none.
	teamID, _ := claims["team_id"].(string)

	return Actor{
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       user.Role(roleStr),
		TeamID:     teamID,
	}, nil
}

// WithActor injects an Actor directly, bypassing token verification.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}
