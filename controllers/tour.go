package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp-backend/models"
	"travelapp-backend/policy"
	"travelapp-backend/repository"
	"travelapp-backend/services"
	"travelapp-backend/utils"
)

// PriceText accepts a price given either as a JSON number or as a string and
// keeps its exact decimal text.
type PriceText string

func (p *PriceText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PriceText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = PriceText(n.String())
	return nil
}

// TourInput is the body of create and update requests. The supervisor is only
// read on create.
type TourInput struct {
	Supervisor              *uint        `json:"supervisor"`
	MaxNumberOfParticipants *int         `json:"max_number_of_participants"`
	DateStart               *models.Date `json:"date_start"`
	DateEnd                 *models.Date `json:"date_end"`
	PlaceID                 *int         `json:"place_id"`
	TourType                *string      `json:"tour_type"`
	Price                   *PriceText   `json:"price"`
	Country                 *string      `json:"country"`
	Region                  *string      `json:"region"`
	City                    *string      `json:"city"`
	Accommodation           *string      `json:"accommodation"`
	IsActive                *bool        `json:"is_active"`
	ProfilePic              *string      `json:"profile_pic"`
}

// missing names the first absent field that a full write requires.
func (in TourInput) missing() string {
	switch {
	case in.MaxNumberOfParticipants == nil:
		return "max_number_of_participants"
	case in.DateStart == nil:
		return "date_start"
	case in.DateEnd == nil:
		return "date_end"
	case in.PlaceID == nil:
		return "place_id"
	case in.TourType == nil:
		return "tour_type"
	case in.Price == nil:
		return "price"
	case in.Country == nil:
		return "country"
	case in.Region == nil:
		return "region"
	case in.City == nil:
		return "city"
	case in.Accommodation == nil:
		return "accommodation"
	}
	return ""
}

func (in TourInput) patch() services.TourPatch {
	patch := services.TourPatch{
		MaxNumberOfParticipants: in.MaxNumberOfParticipants,
		DateStart:               in.DateStart,
		DateEnd:                 in.DateEnd,
		PlaceID:                 in.PlaceID,
		TourType:                in.TourType,
		Country:                 in.Country,
		Region:                  in.Region,
		City:                    in.City,
		Accommodation:           in.Accommodation,
		IsActive:                in.IsActive,
		ProfilePic:              in.ProfilePic,
	}
	if in.Price != nil {
		price := string(*in.Price)
		patch.Price = &price
	}
	return patch
}

// TourView renders a tour with its price fixed to two decimal places.
type TourView struct {
	models.Tour
	Price string `json:"price"`
}

func NewTourView(tour models.Tour) TourView {
	return TourView{Tour: tour, Price: tour.Price.StringFixed(models.PriceScale)}
}

type TourController struct {
	Tours    *services.TourService
	PageSize int
}

func (tc *TourController) List(c *gin.Context) {
	opts, ok := listOptions(c, tc.PageSize)
	if !ok {
		return
	}
	filter := repository.TourFilter{Country: stringQuery(c, "country")}
	if raw := stringQuery(c, "tour_type"); raw != nil {
		tourType, err := models.ParseTourType(*raw)
		if err != nil {
			utils.RespondWithAppError(c, err)
			return
		}
		filter.TourType = &tourType
	}
	var err error
	if filter.IsActive, err = boolQuery(c, "is_active"); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	result, err := tc.Tours.List(c.Request.Context(), utils.CurrentCaller(c), filter, opts)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	respondPage(c, opts, result, NewTourView)
}

// Standard lists the standard tours only.
func (tc *TourController) Standard(c *gin.Context) {
	opts, ok := listOptions(c, tc.PageSize)
	if !ok {
		return
	}
	result, err := tc.Tours.ListStandard(c.Request.Context(), utils.CurrentCaller(c), opts)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	respondPage(c, opts, result, NewTourView)
}

func (tc *TourController) Create(c *gin.Context) {
	caller := utils.CurrentCaller(c)
	if err := policy.Authorize(caller, policy.OpCreate, policy.EntityTour, nil); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	var input TourInput
	if !bindJSON(c, &input) {
		return
	}
	if input.Supervisor == nil {
		utils.RespondWithAppError(c, requiredField("supervisor"))
		return
	}
	if field := input.missing(); field != "" {
		utils.RespondWithAppError(c, requiredField(field))
		return
	}
	price, err := models.ParsePrice(string(*input.Price))
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	tour, err := tc.Tours.Create(c.Request.Context(), caller, services.CreateTourInput{
		SupervisorID:            *input.Supervisor,
		MaxNumberOfParticipants: *input.MaxNumberOfParticipants,
		DateStart:               *input.DateStart,
		DateEnd:                 *input.DateEnd,
		PlaceID:                 *input.PlaceID,
		TourType:                *input.TourType,
		Price:                   price,
		Country:                 *input.Country,
		Region:                  *input.Region,
		City:                    *input.City,
		Accommodation:           *input.Accommodation,
		IsActive:                input.IsActive,
		ProfilePic:              input.ProfilePic,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewTourView(*tour))
}

func (tc *TourController) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	tour, err := tc.Tours.Get(c.Request.Context(), utils.CurrentCaller(c), id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewTourView(*tour))
}

// Replace handles PUT: every required field must be present.
func (tc *TourController) Replace(c *gin.Context) {
	tc.update(c, true)
}

// Patch handles PATCH: only supplied fields change.
func (tc *TourController) Patch(c *gin.Context) {
	tc.update(c, false)
}

func (tc *TourController) update(c *gin.Context, full bool) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	caller := utils.CurrentCaller(c)
	if err := policy.Authorize(caller, policy.OpUpdate, policy.EntityTour, nil); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	var input TourInput
	if !bindJSON(c, &input) {
		return
	}
	if full {
		if field := input.missing(); field != "" {
			utils.RespondWithAppError(c, requiredField(field))
			return
		}
	}
	tour, err := tc.Tours.Update(c.Request.Context(), caller, id, input.patch())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewTourView(*tour))
}

func (tc *TourController) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deleted, err := tc.Tours.Delete(c.Request.Context(), utils.CurrentCaller(c), id)
	respondDeleted(c, deleted, err)
}
