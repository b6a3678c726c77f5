package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendora/internal/models/request_models"
	"vendora/internal/services"
	"vendora/pkg/utils"
)

type PaymentController struct {
	settlementService services.ISettlementService
	offerService      services.IOfferService
}

func NewPaymentController(settlementService services.ISettlementService, offerService services.IOfferService) *PaymentController {
	return &PaymentController{
		settlementService: settlementService,
		offerService:      offerService,
	}
}

// Initiate godoc
// @Summary Price a subscription checkout and open a gateway order
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.InitiatePaymentRequest true "Initiate Payment Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payment/initiate [post]
func (p *PaymentController) Initiate(c *gin.Context) {
	var request request_models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.VendorID.String() != c.GetString("vendor_id") {
		utils.RespondError(c, http.StatusForbidden, "Forbidden: vendor mismatch")
		return
	}

	resp, err := p.settlementService.Initiate(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Order created")
}

// Verify godoc
// @Summary Verify a gateway payment confirmation and activate the subscription
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.VerifyPaymentRequest true "Verify Payment Request"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payment/verify [post]
func (p *PaymentController) Verify(c *gin.Context) {
	var request request_models.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.VendorID.String() != c.GetString("vendor_id") {
		utils.RespondError(c, http.StatusForbidden, "Forbidden: vendor mismatch")
		return
	}

	resp, err := p.settlementService.Verify(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Payment verified")
}

func (p *PaymentController) ListReferralOffers(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("vendor_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vendor id")
		return
	}

	offers, err := p.offerService.ListReferralOffers(c.Request.Context(), vendorID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, offers, "Referral offers")
}

func (p *PaymentController) CurrentSubscription(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("vendor_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vendor id")
		return
	}

	sub, err := p.settlementService.CurrentSubscription(c.Request.Context(), vendorID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, sub, "Current subscription")
}
