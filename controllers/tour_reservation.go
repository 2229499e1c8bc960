package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp-backend/models"
	"travelapp-backend/policy"
	"travelapp-backend/repository"
	"travelapp-backend/services"
	"travelapp-backend/utils"
)

// TourReservationInput is the body of link requests. Reservation and tour are
// only read on create.
type TourReservationInput struct {
	Reservation    *uint `json:"reservation"`
	Tour           *uint `json:"tour"`
	IsPriceReduced *bool `json:"is_price_reduced"`
	IsActive       *bool `json:"is_active"`
}

type TourReservationController struct {
	TourReservations *services.TourReservationService
	PageSize         int
}

func (tc *TourReservationController) List(c *gin.Context) {
	opts, ok := listOptions(c, tc.PageSize)
	if !ok {
		return
	}
	var filter repository.TourReservationFilter
	var err error
	if filter.ReservationID, err = uintQuery(c, "reservation"); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	if filter.TourID, err = uintQuery(c, "tour"); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	if filter.IsPriceReduced, err = boolQuery(c, "is_price_reduced"); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	if filter.IsActive, err = boolQuery(c, "is_active"); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	result, err := tc.TourReservations.List(c.Request.Context(), utils.CurrentCaller(c), filter, opts)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	respondPage(c, opts, result, identity[models.TourReservation])
}

func (tc *TourReservationController) Create(c *gin.Context) {
	caller := utils.CurrentCaller(c)
	if err := policy.Authorize(caller, policy.OpCreate, policy.EntityTourReservation, nil); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	var input TourReservationInput
	if !bindJSON(c, &input) {
		return
	}
	if input.Reservation == nil {
		utils.RespondWithAppError(c, requiredField("reservation"))
		return
	}
	if input.Tour == nil {
		utils.RespondWithAppError(c, requiredField("tour"))
		return
	}

	link, err := tc.TourReservations.Create(c.Request.Context(), caller, services.CreateTourReservationInput{
		ReservationID:  *input.Reservation,
		TourID:         *input.Tour,
		IsPriceReduced: input.IsPriceReduced,
		IsActive:       input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (tc *TourReservationController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	link, err := tc.TourReservations.Get(c.Request.Context(), utils.CurrentCaller(c), id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// Update serves both PUT and PATCH.
func (tc *TourReservationController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input TourReservationInput
	if !bindJSON(c, &input) {
		return
	}
	link, err := tc.TourReservations.Update(c.Request.Context(), utils.CurrentCaller(c), id, services.TourReservationPatch{
		IsPriceReduced: input.IsPriceReduced,
		IsActive:       input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (tc *TourReservationController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deleted, err := tc.TourReservations.Delete(c.Request.Context(), utils.CurrentCaller(c), id)
	respondDeleted(c, deleted, err)
}
