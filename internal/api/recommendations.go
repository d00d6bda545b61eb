package api

import (
	"context"
	"net/http"

	"github.com/nhle/daily-planner/internal/model"
)

// Recommendations asks the service for suggested todos for date, steered
// by the goal's primary and secondary goals and skills focus.
func (c *Client) Recommendations(
	ctx context.Context,
	userID, date string,
	goal model.Goal,
) (model.RecommendationSet, error) {
	req := recommendationRequest{
		UserID:         userID,
		ScheduledDate:  date,
		PrimaryGoal:    optionalString(goal.PrimaryGoal),
		SecondaryGoals: optionalString(goal.SecondaryGoals),
		SkillsFocus:    optionalString(goal.SkillsFocus),
	}

	var resp recommendationsDTO
	if err := c.do(ctx, http.MethodPost, "/api/v1/recommendations", req, &resp); err != nil {
		return model.RecommendationSet{}, err
	}
	return recommendationsFromWire(resp), nil
}
