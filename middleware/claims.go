package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

const (
	jwtClaimOrganizationID = "organization_id"
	jwtClaimRole           = "role"
)

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(claimsContextKey).(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims not found in context or invalid type")
	}
	return claims, nil
}

// GetOrganizationIDFromContext достаёт организацию из токена: мутирующие
// обработчики передают её сервисам, и те сверяют её с организацией турнира.
func GetOrganizationIDFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	claim, ok := claims[jwtClaimOrganizationID]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimOrganizationID)
	}
	id, ok := claim.(string)
	if !ok || id == "" {
		return "", fmt.Errorf("invalid '%s' claim: expected non-empty string, got %T", jwtClaimOrganizationID, claim)
	}
	return id, nil
}

func GetRoleFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	claim, ok := claims[jwtClaimRole]
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}
	role, ok := claim.(string)
	if !ok {
		return "", fmt.Errorf("invalid '%s' claim: expected string, got %T", jwtClaimRole, claim)
	}

	switch role {
	case RoleAdmin, RoleOrganizer:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", role)
	}
}
