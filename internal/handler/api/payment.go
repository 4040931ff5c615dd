package api

import (
	"net/http"

	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const errMsgInvalidPaymentID = "Invalid payment id"

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.PaymentQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Get payment
// @Description Get a payment visible to the caller
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	actor, id, ok := actorAndID(c, errMsgInvalidPaymentID)
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromPaymentView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Refund payment
// @Description Refund a completed payment, fully or partially. Admin only.
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.RefundRequest true "Refund request"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/payments/{id}/refunds [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	actor, id, ok := actorAndID(c, errMsgInvalidPaymentID)
	if !ok {
		return
	}
	var req reqdto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBinding(c, err)
		return
	}

	view, err := h.cmds.Refund(c.Request.Context(), actor, id, req.Amount, req.Reason)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromPaymentView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

type callbackResponse struct {
	PaymentID uuid.UUID `json:"paymentId"`
	Status    string    `json:"status"`
}

// @Summary Payment gateway callback
// @Description Out-of-band charge result. Delivering the same result twice is a no-op.
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Webhook-Secret header string true "Shared webhook secret"
// @Param id path string true "Payment ID"
// @Param request body reqdto.PaymentCallbackRequest true "Gateway result"
// @Success 200 {object} callbackResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/payments/{id}/callback [post]
func (h *PaymentHandler) Callback(c *gin.Context) {
	id, ok := pathID(c, errMsgInvalidPaymentID)
	if !ok {
		return
	}
	var req reqdto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBinding(c, err)
		return
	}

	p, err := h.cmds.HandleGatewayResult(c.Request.Context(), id, req.ToResult())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, callbackResponse{PaymentID: p.ID(), Status: p.Status().String()})
}
