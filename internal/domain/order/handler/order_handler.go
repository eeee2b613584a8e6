package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	orderRepo "laundry_lms/internal/domain/order/repository"
	"laundry_lms/internal/domain/order/service"
	userService "laundry_lms/internal/domain/user/service"
	"laundry_lms/pkg/response"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

type CreateOrderInput struct {
	CustomerID   uint       `json:"customerId" binding:"required"`
	ServiceType  string     `json:"serviceType" binding:"required"`
	Quantity     float64    `json:"quantity" binding:"required,gt=0"`
	Unit         string     `json:"unit" binding:"required"`
	Price        float64    `json:"price" binding:"gte=0"`
	PickupDate   *time.Time `json:"pickupDate"`
	DeliveryDate *time.Time `json:"deliveryDate"`
	Notes        string     `json:"notes"`
	Status       string     `json:"status"`
}

// CreateOrder 创建订单
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, next, err := h.service.Create(service.CreateOrderInput{
		CustomerID:   input.CustomerID,
		ServiceType:  input.ServiceType,
		Quantity:     input.Quantity,
		Unit:         input.Unit,
		Price:        input.Price,
		PickupDate:   input.PickupDate,
		DeliveryDate: input.DeliveryDate,
		Notes:        input.Notes,
		Status:       input.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidService):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidService, err.Error())
		case errors.Is(err, service.ErrInvalidUnit):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidUnit, err.Error())
		case errors.Is(err, service.ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidStatus, err.Error())
		case errors.Is(err, userService.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "Customer not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrOrderCreateFailed, "Failed to create order")
		}
		return
	}

	response.Created(c, gin.H{
		"orderId": order.ID,
		"next":    next,
	})
}

// GetOrders 订单列表，可按 userId 过滤
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var customerID uint
	if v := c.Query("userId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid userId")
			return
		}
		customerID = uint(id)
	}

	orders, err := h.service.List(customerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, orders)
}

// GetOrder 查询单个订单
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid order id")
		return
	}

	order, err := h.service.Get(uint(id))
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, order)
}

// UpdateStatus 更新订单生命周期状态
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid order id")
		return
	}

	order, err := h.service.UpdateStatus(uint(id), c.Query("value"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidStatus, err.Error())
		case errors.Is(err, orderRepo.ErrOrderNotFound):
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	response.Success(c, order)
}

// DeleteOrder 删除订单
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid order id")
		return
	}

	if err := h.service.Delete(uint(id)); err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	c.Status(http.StatusNoContent)
}
