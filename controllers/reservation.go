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

// ReservationInput is the body of create and update requests. On updates the
// user field is ignored: a reservation never changes owner.
type ReservationInput struct {
	User              *uint        `json:"user"`
	DateOfReservation *models.Date `json:"date_of_reservation"`
	AmountOfChildren  *int         `json:"amount_of_children" binding:"omitempty,min=0"`
	AmountOfAdults    *int         `json:"amount_of_adults" binding:"omitempty,min=0"`
	IsConfirmed       *bool        `json:"is_confirmed"`
	IsActive          *bool        `json:"is_active"`
}

func (in ReservationInput) patch() services.ReservationPatch {
	return services.ReservationPatch{
		DateOfReservation: in.DateOfReservation,
		AmountOfChildren:  in.AmountOfChildren,
		AmountOfAdults:    in.AmountOfAdults,
		IsConfirmed:       in.IsConfirmed,
		IsActive:          in.IsActive,
	}
}

type ReservationController struct {
	Reservations *services.ReservationService
	PageSize     int
}

func (rc *ReservationController) List(c *gin.Context) {
	opts, ok := listOptions(c, rc.PageSize)
	if !ok {
		return
	}
	var filter repository.ReservationFilter
	var err error
	if filter.UserID, err = uintQuery(c, "user"); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	if filter.IsConfirmed, err = boolQuery(c, "is_confirmed"); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	if filter.IsActive, err = boolQuery(c, "is_active"); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	result, err := rc.Reservations.List(c.Request.Context(), utils.CurrentCaller(c), filter, opts)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	respondPage(c, opts, result, identity[models.Reservation])
}

// Create books a reservation. The owner defaults to the caller.
func (rc *ReservationController) Create(c *gin.Context) {
	caller := utils.CurrentCaller(c)
	if err := policy.Authorize(caller, policy.OpCreate, policy.EntityReservation, nil); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	var input ReservationInput
	if !bindJSON(c, &input) {
		return
	}
	userID := caller.UserID
	if input.User != nil {
		userID = *input.User
	}

	reservation, err := rc.Reservations.Create(c.Request.Context(), caller, services.CreateReservationInput{
		UserID:            userID,
		DateOfReservation: input.DateOfReservation,
		AmountOfChildren:  input.AmountOfChildren,
		AmountOfAdults:    input.AmountOfAdults,
		IsConfirmed:       input.IsConfirmed,
		IsActive:          input.IsActive,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

func (rc *ReservationController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	reservation, err := rc.Reservations.Get(c.Request.Context(), utils.CurrentCaller(c), id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// Update serves both PUT and PATCH; only supplied fields change.
func (rc *ReservationController) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input ReservationInput
	if !bindJSON(c, &input) {
		return
	}
	reservation, err := rc.Reservations.Update(c.Request.Context(), utils.CurrentCaller(c), id, input.patch())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

func (rc *ReservationController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deleted, err := rc.Reservations.Delete(c.Request.Context(), utils.CurrentCaller(c), id)
	respondDeleted(c, deleted, err)
}
