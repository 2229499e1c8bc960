package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"travelapp-backend/apperrors"
	"travelapp-backend/models"
	"travelapp-backend/repository"
	"travelapp-backend/utils"
)

// field builds a resolver reading one value off a *T source.
func field[T any](get func(*T) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		source, ok := p.Source.(*T)
		if !ok || source == nil {
			return nil, nil
		}
		return get(source), nil
	}
}

func (r *Resolver) buildTypes() {
	r.userType = graphql.NewObject(graphql.ObjectConfig{
		Name:        "UserType",
		Description: "Public projection of a user.",
		Fields: graphql.Fields{
			"id":        {Type: graphql.NewNonNull(graphql.ID), Resolve: field(func(u *models.User) interface{} { return formatID(u.ID) })},
			"username":  {Type: graphql.NewNonNull(graphql.String), Resolve: field(func(u *models.User) interface{} { return u.Username })},
			"firstName": {Type: graphql.String, Resolve: field(func(u *models.User) interface{} { return u.FirstName })},
			"lastName":  {Type: graphql.String, Resolve: field(func(u *models.User) interface{} { return u.LastName })},
		},
	})

	r.reservationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "ReservationType",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":                {Type: graphql.NewNonNull(graphql.ID), Resolve: field(func(res *models.Reservation) interface{} { return formatID(res.ID) })},
				"user":              {Type: r.userType, Resolve: r.reservationUser},
				"dateOfReservation": {Type: DateScalar, Resolve: field(func(res *models.Reservation) interface{} { return res.DateOfReservation })},
				"amountOfChildren":  {Type: graphql.Int, Resolve: field(func(res *models.Reservation) interface{} { return res.AmountOfChildren })},
				"amountOfAdults":    {Type: graphql.Int, Resolve: field(func(res *models.Reservation) interface{} { return res.AmountOfAdults })},
				"isConfirmed":       {Type: graphql.Boolean, Resolve: field(func(res *models.Reservation) interface{} { return res.IsConfirmed })},
				"isActive":          {Type: graphql.Boolean, Resolve: field(func(res *models.Reservation) interface{} { return res.IsActive })},
				"tourreservationSet": {Type: graphql.NewList(r.tourReservationType), Resolve: r.reservationLinks},
			}
		}),
	})

	r.tourType = graphql.NewObject(graphql.ObjectConfig{
		Name: "TourType",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":                      {Type: graphql.NewNonNull(graphql.ID), Resolve: field(func(t *models.Tour) interface{} { return formatID(t.ID) })},
				"supervisor":              {Type: r.userType, Resolve: r.tourSupervisor},
				"maxNumberOfParticipants": {Type: graphql.Int, Resolve: field(func(t *models.Tour) interface{} { return t.MaxNumberOfParticipants })},
				"dateStart":               {Type: DateScalar, Resolve: field(func(t *models.Tour) interface{} { return t.DateStart })},
				"dateEnd":                 {Type: DateScalar, Resolve: field(func(t *models.Tour) interface{} { return t.DateEnd })},
				"placeId":                 {Type: graphql.Int, Resolve: field(func(t *models.Tour) interface{} { return t.PlaceID })},
				"tourType":                {Type: graphql.String, Resolve: field(func(t *models.Tour) interface{} { return string(t.TourType) })},
				"price":                   {Type: DecimalScalar, Resolve: field(func(t *models.Tour) interface{} { return t.Price })},
				"country":                 {Type: graphql.String, Resolve: field(func(t *models.Tour) interface{} { return t.Country })},
				"region":                  {Type: graphql.String, Resolve: field(func(t *models.Tour) interface{} { return t.Region })},
				"city":                    {Type: graphql.String, Resolve: field(func(t *models.Tour) interface{} { return t.City })},
				"accommodation":           {Type: graphql.String, Resolve: field(func(t *models.Tour) interface{} { return t.Accommodation })},
				"isActive":                {Type: graphql.Boolean, Resolve: field(func(t *models.Tour) interface{} { return t.IsActive })},
				"profilePic": {Type: graphql.String, Resolve: field(func(t *models.Tour) interface{} {
					if t.ProfilePic == nil {
						return nil
					}
					return *t.ProfilePic
				})},
				"tourreservationSet": {Type: graphql.NewList(r.tourReservationType), Resolve: r.tourLinks},
			}
		}),
	})

	r.tourReservationType = graphql.NewObject(graphql.ObjectConfig{
		Name: "TourReservationType",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":             {Type: graphql.NewNonNull(graphql.ID), Resolve: field(func(l *models.TourReservation) interface{} { return formatID(l.ID) })},
				"reservation":    {Type: r.reservationType, Resolve: r.linkReservation},
				"tour":           {Type: r.tourType, Resolve: r.linkTour},
				"isPriceReduced": {Type: graphql.Boolean, Resolve: field(func(l *models.TourReservation) interface{} { return l.IsPriceReduced })},
				"isActive":       {Type: graphql.Boolean, Resolve: field(func(l *models.TourReservation) interface{} { return l.IsActive })},
			}
		}),
	})
}

func (r *Resolver) reservationUser(p graphql.ResolveParams) (interface{}, error) {
	reservation, ok := p.Source.(*models.Reservation)
	if !ok {
		return nil, nil
	}
	if reservation.User != nil {
		return reservation.User, nil
	}
	return r.loadUser(p.Context, reservation.UserID)
}

func (r *Resolver) tourSupervisor(p graphql.ResolveParams) (interface{}, error) {
	tour, ok := p.Source.(*models.Tour)
	if !ok {
		return nil, nil
	}
	if tour.Supervisor != nil {
		return tour.Supervisor, nil
	}
	return r.loadUser(p.Context, tour.SupervisorID)
}

func (r *Resolver) loadUser(ctx context.Context, id uint) (interface{}, error) {
	user, err := r.Users.GetByID(ctx, id)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return user, nil
}

func (r *Resolver) reservationLinks(p graphql.ResolveParams) (interface{}, error) {
	reservation, ok := p.Source.(*models.Reservation)
	if !ok {
		return nil, nil
	}
	links, err := r.TourReservations.ListByReservation(p.Context, utils.CallerFromContext(p.Context), reservation.ID)
	if err != nil {
		return nil, wrap(err)
	}
	return pointers(links), nil
}

func (r *Resolver) tourLinks(p graphql.ResolveParams) (interface{}, error) {
	tour, ok := p.Source.(*models.Tour)
	if !ok {
		return nil, nil
	}
	links, err := r.TourReservations.ListByTour(p.Context, utils.CallerFromContext(p.Context), tour.ID)
	if err != nil {
		return nil, wrap(err)
	}
	return pointers(links), nil
}

// linkReservation goes through the reservation policy, so callers who may not
// read the reservation see null.
func (r *Resolver) linkReservation(p graphql.ResolveParams) (interface{}, error) {
	link, ok := p.Source.(*models.TourReservation)
	if !ok {
		return nil, nil
	}
	reservation, err := r.Reservations.Get(p.Context, utils.CallerFromContext(p.Context), link.ReservationID)
	if apperrors.IsNotFound(err) || apperrors.IsAccessDenied(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return reservation, nil
}

func (r *Resolver) linkTour(p graphql.ResolveParams) (interface{}, error) {
	link, ok := p.Source.(*models.TourReservation)
	if !ok {
		return nil, nil
	}
	if link.Tour != nil {
		return link.Tour, nil
	}
	tour, err := r.Tours.Get(p.Context, utils.CallerFromContext(p.Context), link.TourID)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return tour, nil
}

func pointers[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

var allRows = repository.ListOptions{}
