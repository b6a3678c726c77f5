package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendora/internal/models/request_models"
	"vendora/internal/services"
	"vendora/pkg/utils"
)

// FinanceController exposes the cashout review queue to finance staff.
type FinanceController struct {
	cashoutService services.ICashoutService
}

func NewFinanceController(cashoutService services.ICashoutService) *FinanceController {
	return &FinanceController{cashoutService: cashoutService}
}

func (f *FinanceController) ListCashouts(c *gin.Context) {
	cashouts, err := f.cashoutService.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, cashouts, "Cashout requests")
}

func (f *FinanceController) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid cashout id")
		return
	}

	cashout, err := f.cashoutService.Approve(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, cashout, "Cashout approved")
}

func (f *FinanceController) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid cashout id")
		return
	}

	var request request_models.RejectCashoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cashout, err := f.cashoutService.Reject(c.Request.Context(), id, request.Reason)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, cashout, "Cashout rejected")
}

func (f *FinanceController) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid cashout id")
		return
	}

	var request request_models.MarkPaidCashoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cashout, err := f.cashoutService.MarkPaid(c.Request.Context(), id, request.UTR, request.ReceiptURL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, cashout, "Cashout marked paid")
}
