package controllers

import (
	"github.com/gin-gonic/gin"

	"vendora/internal/services"
	"vendora/pkg/utils"
)

type PlanController struct {
	planService services.IPlanService
}

func NewPlanController(planService services.IPlanService) *PlanController {
	return &PlanController{planService: planService}
}

func (p *PlanController) ListPlans(c *gin.Context) {
	plans, err := p.planService.ListPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Plans")
}
