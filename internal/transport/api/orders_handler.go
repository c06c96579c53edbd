package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/transport/api/envelope"
	"github.com/gin-gonic/gin"
)

const (
	MsgAllOrders        = "All Orders."
	MsgOrderFound       = "Order found."
	MsgOrderCreated     = "Order created successfully."
	MsgInvalidOrder     = "Invalid Order."
	MsgOrderNoItems     = "Order not created - Invalid item(s) or count"
	MsgOrderNotFound    = "Order not found - Invalid order identifier or user"
	MsgOrderAlreadyPaid = "Order already paid."
	MsgNotEnoughBalance = "Insufficient balance."
	MsgOrderPaid        = "Order Paid."
	MsgOrderNotPaid     = "Order not Paid."
	MsgPayFailed        = "Failed to pay order."
)

type OrdersHandler struct {
	orderSvs OrderServicer
}

func NewOrdersHandler(orderSvs OrderServicer) *OrdersHandler {
	return &OrdersHandler{
		orderSvs: orderSvs,
	}
}

// Index POST /order/. Страница заказов текущего пользователя, новые первыми.
func (o *OrdersHandler) Index(c *gin.Context) {
	page := bindPage(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	result, err := o.orderSvs.List(reqCtx, currentUserID(c), page)
	if err != nil {
		internalError(c, err)
		return
	}

	fields := pageFields(result.Page, result.Count)
	fields["orders"] = mapSlice(result.Payments, newOrderResponse)
	fields["status"] = result.Status
	envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, MsgAllOrders, fields)
}

// Show GET /order/:orderId. Отсутствующий заказ отдает 204.
func (o *OrdersHandler) Show(c *gin.Context) {
	paymentID, ok := pathID(c, "orderId", "Order")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	payment, err := o.orderSvs.Get(reqCtx, currentUserID(c), paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		internalError(c, err)
		return
	}

	envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, MsgOrderFound, gin.H{"order": newOrderResponse(payment)})
}

type CreateOrderParams struct {
	Orders json.RawMessage `json:"orders"`
}

// Create POST /order/create. Тело {"orders": [{"foodId": ..., "count": ...}, ...]}.
func (o *OrdersHandler) Create(c *gin.Context) {
	var params CreateOrderParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.Error(bindErr).SetType(gin.ErrorTypeBind)
		envelope.Abort(c, http.StatusBadRequest, envelope.CodeValidationError, MsgInvalidOrder, nil)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	payment, err := o.orderSvs.Create(reqCtx, currentUserID(c), params.Orders)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCart):
			envelope.Abort(c, http.StatusBadRequest, envelope.CodeValidationError, MsgInvalidOrder, nil)
		case errors.Is(err, domain.ErrNoValidItems):
			envelope.Abort(c, http.StatusBadRequest, envelope.CodeFailed, MsgOrderNoItems, nil)
		case isDatabaseError(err):
			respondDatabaseError(c, err, "Failed to create order.")
		default:
			internalError(c, err)
		}
		return
	}

	envelope.JSON(c, http.StatusCreated, envelope.CodeSuccess, MsgOrderCreated, gin.H{"order": newOrderResponse(payment)})
}

// Pay PATCH /order/:orderId. Оплата заказа с баланса пользователя.
func (o *OrdersHandler) Pay(c *gin.Context) {
	paymentID, ok := pathID(c, "orderId", "Order")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	settlement, err := o.orderSvs.Pay(reqCtx, currentUserID(c), paymentID)
	if err != nil {
		var alreadyPaid *domain.AlreadyPaidError
		var insufficient *domain.InsufficientFundsError
		switch {
		case errors.As(err, &alreadyPaid):
			envelope.Abort(c, http.StatusBadRequest, envelope.CodeFailed, MsgOrderAlreadyPaid,
				gin.H{"payment": newOrderResponse(alreadyPaid.Payment)})
		case errors.As(err, &insufficient):
			envelope.Abort(c, http.StatusBadRequest, envelope.CodeForbidden, MsgNotEnoughBalance, gin.H{
				"balance": money(insufficient.Balance),
				"payment": money(insufficient.Amount),
			})
		case errors.Is(err, domain.ErrRecordNotFound):
			envelope.Abort(c, http.StatusBadRequest, envelope.CodeFailed, MsgOrderNotFound, nil)
		case errors.Is(err, domain.ErrSettlementConflict):
			_ = c.Error(err)
			envelope.Abort(c, http.StatusInternalServerError, envelope.CodeDatabaseError, MsgOrderNotPaid, nil)
		case isDatabaseError(err):
			respondDatabaseError(c, err, MsgPayFailed)
		default:
			internalError(c, err)
		}
		return
	}

	envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, MsgOrderPaid, gin.H{
		"balance": money(settlement.Balance),
		"payment": money(settlement.Payment.Amount),
	})
}
