package api

import (
	"net/http"

	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const errMsgInvalidPropertyID = "Invalid property id"

type PropertyHandler struct {
	q queries.PropertyQueries
}

func NewPropertyHandler(q queries.PropertyQueries) *PropertyHandler {
	return &PropertyHandler{q: q}
}

// @Summary Quote a stay
// @Description Price a stay with the current dynamic factors. Never cached.
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/properties/{id}/quote [get]
func (h *PropertyHandler) Quote(c *gin.Context) {
	id, ok := pathID(c, errMsgInvalidPropertyID)
	if !ok {
		return
	}
	var query reqdto.StayQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortBinding(c, err)
		return
	}

	view, err := h.q.Quote(c.Request.Context(), id, reqdto.ParseDate(query.CheckIn), reqdto.ParseDate(query.CheckOut))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromQuoteView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Check availability
// @Description Whether no pending or confirmed booking overlaps the stay
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path string true "Property ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/properties/{id}/availability [get]
func (h *PropertyHandler) Availability(c *gin.Context) {
	id, ok := pathID(c, errMsgInvalidPropertyID)
	if !ok {
		return
	}
	var query reqdto.StayQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortBinding(c, err)
		return
	}

	view, err := h.q.Availability(c.Request.Context(), id, reqdto.ParseDate(query.CheckIn), reqdto.ParseDate(query.CheckOut))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromAvailabilityView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
