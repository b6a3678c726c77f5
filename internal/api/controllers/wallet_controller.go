package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vendora/internal/models/request_models"
	"vendora/internal/services"
	"vendora/pkg/utils"
)

type WalletController struct {
	walletService  services.IWalletService
	cashoutService services.ICashoutService
}

func NewWalletController(walletService services.IWalletService, cashoutService services.ICashoutService) *WalletController {
	return &WalletController{
		walletService:  walletService,
		cashoutService: cashoutService,
	}
}

func (w *WalletController) GetWallet(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("vendor_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vendor id")
		return
	}

	wallet, err := w.walletService.GetWallet(c.Request.Context(), vendorID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, wallet, "Wallet")
}

func (w *WalletController) ListCashouts(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("vendor_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vendor id")
		return
	}

	cashouts, err := w.cashoutService.ListForVendor(c.Request.Context(), vendorID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, cashouts, "Cashout requests")
}

// CreateCashout debits the wallet immediately; the vendor cannot
// request more than their available balance across concurrent requests.
func (w *WalletController) CreateCashout(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("vendor_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vendor id")
		return
	}

	var request request_models.CreateCashoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	cashout, err := w.cashoutService.Request(c.Request.Context(), vendorID, request.Amount)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, cashout, "Cashout requested")
}
