package transport

import (
	"context"
	"fmt"

	"github.com/go-kit/kit/endpoint"

	"github.com/vnykmshr/pantry/pkg/ingredient"
	"github.com/vnykmshr/pantry/pkg/profile"
)

// Endpoints collects all of the endpoints that compose the pantry HTTP API
type Endpoints struct {
	Health        endpoint.Endpoint
	Check         endpoint.Endpoint
	GetProfile    endpoint.Endpoint
	PutProfile    endpoint.Endpoint
	DeleteProfile endpoint.Endpoint
	ListProfiles  endpoint.Endpoint
}

// NewEndpoints returns an Endpoints struct where each endpoint invokes the
// checker or the profile store
func NewEndpoints(checker *ingredient.Checker, store profile.Store) *Endpoints {
	return &Endpoints{
		Health:        makeHealthEndpoint(),
		Check:         makeCheckEndpoint(checker, store),
		GetProfile:    makeGetProfileEndpoint(store),
		PutProfile:    makePutProfileEndpoint(store),
		DeleteProfile: makeDeleteProfileEndpoint(store),
		ListProfiles:  makeListProfilesEndpoint(store),
	}
}

func makeHealthEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		return healthResponse{Status: "healthy"}, nil
	}
}

func makeCheckEndpoint(checker *ingredient.Checker, store profile.Store) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(checkRequest)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected request type %T", errBadRequest, request)
		}

		// A missing ingredients field stays nil so the checker rejects it.
		var list *ingredient.List
		if req.Ingredients != nil {
			list = ingredient.NewList(req.Ingredients...)
		}

		var allergens *ingredient.AllergenSet
		switch {
		case req.Consumer != "":
			set, err := store.Allergens(ctx, req.Consumer)
			if err != nil {
				return nil, err
			}
			allergens = set
		case req.Allergens != nil:
			allergens = ingredient.NewAllergenSet(req.Allergens...)
		}

		matches, err := checker.MatchingAllergens(list, allergens)
		if err != nil {
			return nil, err
		}
		if matches == nil {
			matches = []string{}
		}
		return checkResponse{Contains: len(matches) > 0, Matches: matches}, nil
	}
}

func makeGetProfileEndpoint(store profile.Store) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(profileRequest)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected request type %T", errBadRequest, request)
		}

		allergens, err := store.Allergens(ctx, req.Consumer)
		if err != nil {
			return nil, err
		}
		return profileResponse{Consumer: req.Consumer, Allergens: allergens.Names()}, nil
	}
}

func makePutProfileEndpoint(store profile.Store) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(profileRequest)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected request type %T", errBadRequest, request)
		}

		allergens := ingredient.NewAllergenSet(req.Allergens...)
		if err := store.Save(ctx, req.Consumer, allergens); err != nil {
			return nil, err
		}
		return profileResponse{Consumer: req.Consumer, Allergens: allergens.Names()}, nil
	}
}

func makeDeleteProfileEndpoint(store profile.Store) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req, ok := request.(profileRequest)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected request type %T", errBadRequest, request)
		}

		if err := store.Delete(ctx, req.Consumer); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func makeListProfilesEndpoint(store profile.Store) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		consumers, err := store.Consumers(ctx)
		if err != nil {
			return nil, err
		}
		return listProfilesResponse{Consumers: consumers}, nil
	}
}
