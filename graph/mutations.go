package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"travelapp-backend/apperrors"
	"travelapp-backend/services"
	"travelapp-backend/utils"
)

func (r *Resolver) mutation() *graphql.Object {
	deletePayload := func(name string) *graphql.Object {
		return graphql.NewObject(graphql.ObjectConfig{
			Name:   name,
			Fields: graphql.Fields{"success": {Type: graphql.Boolean}},
		})
	}
	payload := func(name, fieldName string, t *graphql.Object) *graphql.Object {
		return graphql.NewObject(graphql.ObjectConfig{
			Name:   name,
			Fields: graphql.Fields{fieldName: {Type: t}},
		})
	}
	requiredID := graphql.FieldConfigArgument{"id": {Type: graphql.NewNonNull(graphql.Int)}}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createReservation": {
				Type: payload("CreateReservation", "reservation", r.reservationType),
				Args: graphql.FieldConfigArgument{
					"userId":            {Type: graphql.NewNonNull(graphql.Int)},
					"dateOfReservation": {Type: DateScalar},
					"amountOfChildren":  {Type: graphql.Int},
					"amountOfAdults":    {Type: graphql.Int},
					"isConfirmed":       {Type: graphql.Boolean},
					"isActive":          {Type: graphql.Boolean},
				},
				Resolve: r.createReservation,
			},
			"updateReservation": {
				Type: payload("UpdateReservation", "reservation", r.reservationType),
				Args: graphql.FieldConfigArgument{
					"id":               {Type: graphql.NewNonNull(graphql.Int)},
					"amountOfChildren": {Type: graphql.Int},
					"amountOfAdults":   {Type: graphql.Int},
					"isConfirmed":      {Type: graphql.Boolean},
					"isActive":         {Type: graphql.Boolean},
				},
				Resolve: r.updateReservation,
			},
			"deleteReservation": {
				Type: deletePayload("DeleteReservation"),
				Args: requiredID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := idFrom(p.Args)
					return deleted(r.Reservations.Delete(p.Context, utils.CallerFromContext(p.Context), id))
				},
			},
			"createTour": {
				Type: payload("CreateTour", "tour", r.tourType),
				Args: graphql.FieldConfigArgument{
					"supervisorId":            {Type: graphql.NewNonNull(graphql.Int)},
					"maxNumberOfParticipants": {Type: graphql.NewNonNull(graphql.Int)},
					"dateStart":               {Type: graphql.NewNonNull(DateScalar)},
					"dateEnd":                 {Type: graphql.NewNonNull(DateScalar)},
					"placeId":                 {Type: graphql.NewNonNull(graphql.Int)},
					"tourType":                {Type: graphql.NewNonNull(graphql.String)},
					"price":                   {Type: graphql.NewNonNull(graphql.Float)},
					"country":                 {Type: graphql.NewNonNull(graphql.String)},
					"region":                  {Type: graphql.NewNonNull(graphql.String)},
					"city":                    {Type: graphql.NewNonNull(graphql.String)},
					"accommodation":           {Type: graphql.NewNonNull(graphql.String)},
					"isActive":                {Type: graphql.Boolean},
				},
				Resolve: r.createTour,
			},
			"updateTour": {
				Type: payload("UpdateTour", "tour", r.tourType),
				Args: graphql.FieldConfigArgument{
					"id":                      {Type: graphql.NewNonNull(graphql.Int)},
					"maxNumberOfParticipants": {Type: graphql.Int},
					"tourType":                {Type: graphql.String},
					"price":                   {Type: graphql.String},
					"isActive":                {Type: graphql.Boolean},
				},
				Resolve: r.updateTour,
			},
			"deleteTour": {
				Type: deletePayload("DeleteTour"),
				Args: requiredID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := idFrom(p.Args)
					return deleted(r.Tours.Delete(p.Context, utils.CallerFromContext(p.Context), id))
				},
			},
			"createTourReservation": {
				Type: payload("CreateTourReservation", "tourReservation", r.tourReservationType),
				Args: graphql.FieldConfigArgument{
					"reservationId":  {Type: graphql.NewNonNull(graphql.Int)},
					"tourId":         {Type: graphql.NewNonNull(graphql.Int)},
					"isPriceReduced": {Type: graphql.Boolean},
				},
				Resolve: r.createTourReservation,
			},
			"updateTourReservation": {
				Type: payload("UpdateTourReservation", "tourReservation", r.tourReservationType),
				Args: graphql.FieldConfigArgument{
					"id":             {Type: graphql.NewNonNull(graphql.Int)},
					"isPriceReduced": {Type: graphql.Boolean},
					"isActive":       {Type: graphql.Boolean},
				},
				Resolve: r.updateTourReservation,
			},
			"deleteTourReservation": {
				Type: deletePayload("DeleteTourReservation"),
				Args: requiredID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := idFrom(p.Args)
					return deleted(r.TourReservations.Delete(p.Context, utils.CallerFromContext(p.Context), id))
				},
			},
		},
	})
}

func (r *Resolver) createReservation(p graphql.ResolveParams) (interface{}, error) {
	userID := idArg(p.Args, "userId")
	if userID == 0 {
		return nil, wrap(apperrors.NotFound("user", 0))
	}
	reservation, err := r.Reservations.Create(p.Context, utils.CallerFromContext(p.Context), services.CreateReservationInput{
		UserID:            userID,
		DateOfReservation: dateArg(p.Args, "dateOfReservation"),
		AmountOfChildren:  intArg(p.Args, "amountOfChildren"),
		AmountOfAdults:    intArg(p.Args, "amountOfAdults"),
		IsConfirmed:       boolArg(p.Args, "isConfirmed"),
		IsActive:          boolArg(p.Args, "isActive"),
	})
	if err != nil {
		return nil, wrap(err)
	}
	return map[string]interface{}{"reservation": reservation}, nil
}

func (r *Resolver) updateReservation(p graphql.ResolveParams) (interface{}, error) {
	id, _ := idFrom(p.Args)
	reservation, err := r.Reservations.Update(p.Context, utils.CallerFromContext(p.Context), id, services.ReservationPatch{
		AmountOfChildren: intArg(p.Args, "amountOfChildren"),
		AmountOfAdults:   intArg(p.Args, "amountOfAdults"),
		IsConfirmed:      boolArg(p.Args, "isConfirmed"),
		IsActive:         boolArg(p.Args, "isActive"),
	})
	if err != nil {
		return nil, wrap(err)
	}
	return map[string]interface{}{"reservation": reservation}, nil
}

func (r *Resolver) createTour(p graphql.ResolveParams) (interface{}, error) {
	price, _ := p.Args["price"].(float64)
	in := services.CreateTourInput{
		SupervisorID:            idArg(p.Args, "supervisorId"),
		MaxNumberOfParticipants: *intArg(p.Args, "maxNumberOfParticipants"),
		PlaceID:                 *intArg(p.Args, "placeId"),
		TourType:                *stringArg(p.Args, "tourType"),
		Price:                   decimal.NewFromFloat(price),
		Country:                 *stringArg(p.Args, "country"),
		Region:                  *stringArg(p.Args, "region"),
		City:                    *stringArg(p.Args, "city"),
		Accommodation:           *stringArg(p.Args, "accommodation"),
		IsActive:                boolArg(p.Args, "isActive"),
	}
	if start := dateArg(p.Args, "dateStart"); start != nil {
		in.DateStart = *start
	}
	if end := dateArg(p.Args, "dateEnd"); end != nil {
		in.DateEnd = *end
	}

	tour, err := r.Tours.Create(p.Context, utils.CallerFromContext(p.Context), in)
	if err != nil {
		return nil, wrap(err)
	}
	return map[string]interface{}{"tour": tour}, nil
}

func (r *Resolver) updateTour(p graphql.ResolveParams) (interface{}, error) {
	id, _ := idFrom(p.Args)
	tour, err := r.Tours.Update(p.Context, utils.CallerFromContext(p.Context), id, services.TourPatch{
		MaxNumberOfParticipants: intArg(p.Args, "maxNumberOfParticipants"),
		TourType:                stringArg(p.Args, "tourType"),
		Price:                   stringArg(p.Args, "price"),
		IsActive:                boolArg(p.Args, "isActive"),
	})
	if err != nil {
		return nil, wrap(err)
	}
	return map[string]interface{}{"tour": tour}, nil
}

func (r *Resolver) createTourReservation(p graphql.ResolveParams) (interface{}, error) {
	link, err := r.TourReservations.Create(p.Context, utils.CallerFromContext(p.Context), services.CreateTourReservationInput{
		ReservationID:  idArg(p.Args, "reservationId"),
		TourID:         idArg(p.Args, "tourId"),
		IsPriceReduced: boolArg(p.Args, "isPriceReduced"),
	})
	if err != nil {
		return nil, wrap(err)
	}
	return map[string]interface{}{"tourReservation": link}, nil
}

func (r *Resolver) updateTourReservation(p graphql.ResolveParams) (interface{}, error) {
	id, _ := idFrom(p.Args)
	link, err := r.TourReservations.Update(p.Context, utils.CallerFromContext(p.Context), id, services.TourReservationPatch{
		IsPriceReduced: boolArg(p.Args, "isPriceReduced"),
		IsActive:       boolArg(p.Args, "isActive"),
	})
	if err != nil {
		return nil, wrap(err)
	}
	return map[string]interface{}{"tourReservation": link}, nil
}

func deleted(ok bool, err error) (interface{}, error) {
	if err != nil {
		return nil, wrap(err)
	}
	return map[string]interface{}{"success": ok}, nil
}
