// Package graph exposes the domain operations as a GraphQL schema. Queries
// and mutations run through the same services and policy as the REST API.
package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"travelapp-backend/apperrors"
	"travelapp-backend/models"
	"travelapp-backend/repository"
	"travelapp-backend/services"
	"travelapp-backend/utils"
)

type Resolver struct {
	Reservations     *services.ReservationService
	Tours            *services.TourService
	TourReservations *services.TourReservationService
	Users            *repository.UserRepository

	userType            *graphql.Object
	reservationType     *graphql.Object
	tourType            *graphql.Object
	tourReservationType *graphql.Object
}

// NewSchema builds the query and mutation schema over r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	r.buildTypes()
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    r.query(),
		Mutation: r.mutation(),
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("build graphql schema: %w", err)
	}
	return schema, nil
}

func (r *Resolver) query() *graphql.Object {
	idArg := graphql.FieldConfigArgument{"id": {Type: graphql.Int}}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allReservations": {
				Type: graphql.NewList(r.reservationType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, err := r.Reservations.List(p.Context, utils.CallerFromContext(p.Context), repository.ReservationFilter{}, allRows)
					if err != nil {
						return nil, wrap(err)
					}
					return pointers(result.Items), nil
				},
			},
			"reservation": {
				Type: r.reservationType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := idFrom(p.Args)
					if !ok {
						return nil, nil
					}
					return nullIfMissing(r.Reservations.Get(p.Context, utils.CallerFromContext(p.Context), id))
				},
			},
			"allTours": {
				Type: graphql.NewList(r.tourType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, err := r.Tours.List(p.Context, utils.CallerFromContext(p.Context), repository.TourFilter{}, allRows)
					if err != nil {
						return nil, wrap(err)
					}
					return pointers(result.Items), nil
				},
			},
			"standardTours": {
				Type: graphql.NewList(r.tourType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, err := r.Tours.ListStandard(p.Context, utils.CallerFromContext(p.Context), allRows)
					if err != nil {
						return nil, wrap(err)
					}
					return pointers(result.Items), nil
				},
			},
			"tour": {
				Type: r.tourType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := idFrom(p.Args)
					if !ok {
						return nil, nil
					}
					return nullIfMissing(r.Tours.Get(p.Context, utils.CallerFromContext(p.Context), id))
				},
			},
			"allTourReservations": {
				Type: graphql.NewList(r.tourReservationType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, err := r.TourReservations.List(p.Context, utils.CallerFromContext(p.Context), repository.TourReservationFilter{}, allRows)
					if err != nil {
						return nil, wrap(err)
					}
					return pointers(result.Items), nil
				},
			},
			"tourReservation": {
				Type: r.tourReservationType,
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := idFrom(p.Args)
					if !ok {
						return nil, nil
					}
					return nullIfMissing(r.TourReservations.Get(p.Context, utils.CallerFromContext(p.Context), id))
				},
			},
		},
	})
}

// nullIfMissing resolves a missing row to null instead of an error.
func nullIfMissing[T any](value *T, err error) (interface{}, error) {
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return value, nil
}

func idFrom(args map[string]interface{}) (uint, bool) {
	id := idArg(args, "id")
	return id, id != 0
}

// idArg reads an Int id argument; absent or non-positive ids read as 0.
func idArg(args map[string]interface{}, name string) uint {
	id, ok := args[name].(int)
	if !ok || id <= 0 {
		return 0
	}
	return uint(id)
}

func intArg(args map[string]interface{}, name string) *int {
	if v, ok := args[name].(int); ok {
		return &v
	}
	return nil
}

func boolArg(args map[string]interface{}, name string) *bool {
	if v, ok := args[name].(bool); ok {
		return &v
	}
	return nil
}

func stringArg(args map[string]interface{}, name string) *string {
	if v, ok := args[name].(string); ok {
		return &v
	}
	return nil
}

func dateArg(args map[string]interface{}, name string) *models.Date {
	if v, ok := args[name].(models.Date); ok {
		return &v
	}
	return nil
}
