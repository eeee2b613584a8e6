package handler

import (
	"errors"
	"net/http"
	"strings"

	orderRepo "laundry_lms/internal/domain/order/repository"
	"laundry_lms/internal/domain/payment/repository"
	"laundry_lms/internal/domain/payment/service"
	"laundry_lms/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

type CODConfirmInput struct {
	OrderID uint `json:"orderId" binding:"required"`
}

type CheckoutInput struct {
	OrderID uint `json:"orderId" binding:"required"`
}

type DemoWebhookInput struct {
	OrderID uint    `json:"orderId" binding:"required"`
	Status  string  `json:"status" binding:"required"`
	DemoRef string  `json:"demoRef"`
	Amount  float64 `json:"amount"`
}

// ConfirmCOD 确认货到付款
func (h *PaymentHandler) ConfirmCOD(c *gin.Context) {
	var input CODConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, checkout, err := h.service.ConfirmCOD(input.OrderID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"orderId": order.ID,
		"next":    checkout.RedirectURL,
	})
}

// Checkout 生成演示收银台跳转
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	checkout, err := h.service.CreateDemoCheckout(input.OrderID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, gin.H{"redirectUrl": checkout.RedirectURL})
}

// DemoWebhook 演示收银台回调
// status=success 结算成功，其余视为失败
func (h *PaymentHandler) DemoWebhook(c *gin.Context) {
	var input DemoWebhookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	switch strings.ToLower(input.Status) {
	case "success":
		if err := h.service.MarkCardPaid(input.OrderID, input.DemoRef, input.Amount); err != nil {
			h.writeError(c, err)
			return
		}
		response.Success(c, gin.H{"status": "PAID"})
	case "failure", "failed":
		if err := h.service.MarkFailed(input.OrderID, "demo-failed"); err != nil {
			h.writeError(c, err)
			return
		}
		response.Success(c, gin.H{"status": "FAILED"})
	default:
		response.Error(c, http.StatusBadRequest, response.ErrInvalidWebhook, "unsupported webhook status")
	}
}

func (h *PaymentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orderRepo.ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, err.Error())
	case errors.Is(err, repository.ErrConflict):
		response.Error(c, http.StatusConflict, response.ErrPaymentConflict, "concurrent payment update, please retry")
	case errors.Is(err, service.ErrUnsupportedMethod):
		response.Error(c, http.StatusBadRequest, response.ErrUnsupportedPay, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}
