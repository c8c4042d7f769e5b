package model

import "github.com/golang-jwt/jwt/v5"

// DashboardClaims are JWT claims for dashboard users
type DashboardClaims struct {
	UserID string   `json:"userId"`
	Teams  []string `json:"teams"`
	jwt.RegisteredClaims
}

// CanAccess reports whether the claims grant access to team
func (c *DashboardClaims) CanAccess(team string) bool {
	for _, t := range c.Teams {
		if t == team || t == "*" {
			return true
		}
	}
	return false
}

// LoginRequest is the request body for dashboard login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token  string   `json:"token"`
	UserID string   `json:"userId"`
	Teams  []string `json:"teams"`
}
