package token

import (
	authmw "tutela/pkg/platform/middleware/auth"
)

// MiddlewareAdapter exposes the token service through the auth middleware's
// Validator interface.
type MiddlewareAdapter struct {
	service *Service
}

func NewMiddlewareAdapter(service *Service) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

func (a *MiddlewareAdapter) Validate(tokenString string) (*authmw.Claims, error) {
	claims, err := a.service.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.Claims{
		UserID: claims.UserID,
		OrgID:  claims.OrgID,
		Role:   claims.Role,
	}, nil
}
