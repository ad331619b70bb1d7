package storage

import (
	"context"

	"github.com/carebell/carebell/internal/model"
	"github.com/carebell/carebell/internal/validate"
)

// ProfileRepo stores the family profile used to derive birthday events.
type ProfileRepo struct {
	store Store
}

// NewProfileRepo creates a new profile repository.
func NewProfileRepo(store Store) *ProfileRepo {
	return &ProfileRepo{store: store}
}

// Get retrieves the profile, empty when unset.
func (r *ProfileRepo) Get(ctx context.Context) (model.Profile, error) {
	var profile model.Profile
	if _, err := loadJSON(ctx, r.store, model.KeyProfile, &profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}

// Set persists the profile. Member names end up in birthday labels on
// the display, so they are cleaned on the way in.
func (r *ProfileRepo) Set(ctx context.Context, profile model.Profile) error {
	members := make([]model.Member, len(profile.Members))
	copy(members, profile.Members)
	for i := range members {
		members[i].Name = validate.Label(members[i].Name)
	}
	profile.Members = members
	return saveJSON(ctx, r.store, model.KeyProfile, profile)
}
