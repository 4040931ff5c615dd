package api

import (
	"context"
	"net/http"

	"rental-booking/internal/domain/otp"
	"rental-booking/internal/domain/user"
	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OTPHandler struct {
	cmds commands.OTPCommands
}

func NewOTPHandler(cmds commands.OTPCommands) *OTPHandler {
	return &OTPHandler{cmds: cmds}
}

// @Summary Issue OTP
// @Description Issue a 6-digit code for a booking action. Replaces any pending code.
// @Tags otp
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.GenerateOTPRequest true "Purpose"
// @Success 201 {object} resdto.ChallengeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings/{id}/otp [post]
func (h *OTPHandler) Generate(c *gin.Context) {
	h.issue(c, h.cmds.GenerateOTP)
}

// @Summary Resend OTP
// @Description Issue a fresh code, at most once per cooldown window
// @Tags otp
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.GenerateOTPRequest true "Purpose"
// @Success 201 {object} resdto.ChallengeResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/otp/resend [post]
func (h *OTPHandler) Resend(c *gin.Context) {
	h.issue(c, h.cmds.ResendOTP)
}

type issueFunc func(ctx context.Context, actor user.Actor, bookingID uuid.UUID, purpose otp.Purpose) (*commands.IssuedChallenge, error)

func (h *OTPHandler) issue(c *gin.Context, fn issueFunc) {
	actor, id, ok := actorAndID(c, errMsgInvalidBookingID)
	if !ok {
		return
	}
	var req reqdto.GenerateOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBinding(c, err)
		return
	}

	issued, err := fn(c.Request.Context(), actor, id, otp.Purpose(req.Purpose))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromIssuedChallenge(issued))
}

// @Summary Verify OTP
// @Description Check a code. A wrong code still counts an attempt; a verified confirmation code confirms the booking and starts the charge.
// @Tags otp
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.VerifyOTPRequest true "Code"
// @Success 200 {object} resdto.VerifyOTPResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/bookings/{id}/otp/verify [post]
func (h *OTPHandler) Verify(c *gin.Context) {
	actor, id, ok := actorAndID(c, errMsgInvalidBookingID)
	if !ok {
		return
	}
	var req reqdto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortBinding(c, err)
		return
	}

	res, err := h.cmds.VerifyOTP(c.Request.Context(), actor, id, req.Code)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromVerifyResult(res)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
