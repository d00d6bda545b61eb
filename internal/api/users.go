package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nhle/daily-planner/internal/model"
)

// User is the service's view of an account and its current goal.
type User struct {
	ID      string
	Profile model.Profile
	Goal    *model.Goal
}

func userFromWire(d userDTO) User {
	u := User{
		ID: d.ID,
		Profile: model.Profile{
			Email:    d.Email,
			FullName: derefString(d.FullName),
			Timezone: derefString(d.Timezone),
		},
	}
	if d.Goal != nil {
		g := goalFromWire(*d.Goal)
		u.Goal = &g
	}
	return u
}

// Onboard creates or updates the user identified by the profile's email
// together with their goal.
func (c *Client) Onboard(ctx context.Context, profile model.Profile, goal model.Goal) (User, error) {
	req := onboardingRequest{
		Email:    profile.Email,
		FullName: optionalString(profile.FullName),
		Timezone: optionalString(profile.Timezone),
		Goal:     goalToWire(goal),
	}

	var resp userDTO
	if err := c.do(ctx, http.MethodPost, "/api/v1/onboarding", req, &resp); err != nil {
		return User{}, err
	}
	return userFromWire(resp), nil
}

// GetUser fetches a user's profile and goal.
func (c *Client) GetUser(ctx context.Context, userID string) (User, error) {
	var resp userDTO
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/"+url.PathEscape(userID), nil, &resp); err != nil {
		return User{}, err
	}
	return userFromWire(resp), nil
}

// SaveAvailability records the user's time budget for a day.
func (c *Client) SaveAvailability(ctx context.Context, userID string, a model.Availability) (model.Availability, error) {
	var resp availabilityDTO
	if err := c.do(ctx, http.MethodPost, "/api/v1/availability", availabilityToWire(userID, a), &resp); err != nil {
		return model.Availability{}, err
	}
	return availabilityFromWire(resp), nil
}
