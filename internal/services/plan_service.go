package services

import (
	"context"

	"vendora/internal/models/response_models"
	"vendora/internal/repositories"
	"vendora/pkg/utils"
)

type IPlanService interface {
	ListPlans(ctx context.Context) ([]response_models.PlanResponse, error)
}

type planService struct {
	planRepo repositories.IPlanRepository
}

func NewPlanService(planRepo repositories.IPlanRepository) IPlanService {
	return &planService{planRepo: planRepo}
}

func (p *planService) ListPlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.ListActivePlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.PlanResponse, 0, len(plans))
	for _, plan := range plans {
		out = append(out, response_models.PlanResponse{
			ID:           plan.ID,
			Code:         plan.Code,
			Name:         plan.Name,
			Description:  plan.Description,
			Price:        plan.Price,
			Currency:     plan.Currency,
			DurationDays: plan.Duration(),
			IsActive:     plan.IsActive,
		})
	}
	return out, nil
}
