package viewmodel

import (
	"context"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/internal/domain/policy"
	"github.com/nhu-hockey/nhu-app/internal/domain/utils/validator"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

type profileService interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	UpdateProfile(ctx context.Context, profile *entity.User) (*entity.User, error)
}

// ProfileViewModel backs the profile screen of the signed-in user.
type ProfileViewModel struct {
	*scope

	session Session
	users   profileService
	clock   clockwork.Clock

	Profile *Store[ItemState[entity.User]]
}

func NewProfileViewModel(ctx context.Context, logger *types.Logger, session Session, users profileService, clock clockwork.Clock) *ProfileViewModel {
	return &ProfileViewModel{
		scope:   newScope(ctx, logger),
		session: session,
		users:   users,
		clock:   clock,
		Profile: NewStore(ItemState[entity.User]{}),
	}
}

func (vm *ProfileViewModel) LoadProfile() {
	vm.launch(func(ctx context.Context) {
		itemLoading(vm.Profile)
		user, err := vm.users.Get(ctx, vm.session.UserID)
		itemDone(vm.scope, vm.Profile, "load profile", user, err, false)
	})
}

// UpdateProfile validates form and saves it over the loaded profile.
func (vm *ProfileViewModel) UpdateProfile(form validator.ProfileForm, emergencyRelationship string) {
	if !allowed(vm.scope, vm.session, vm.Profile, policy.ActionEditOwnProfile) || !validForm(vm.Profile, form, vm.clock.Now()) {
		return
	}
	vm.launch(func(ctx context.Context) {
		current := vm.Profile.Get().Item
		itemLoading(vm.Profile)

		profile := entity.User{ID: vm.session.UserID}
		if current != nil {
			profile = *current
		}
		profile.FirstName = strings.TrimSpace(form.FirstName)
		profile.LastName = strings.TrimSpace(form.LastName)
		profile.PhoneNumber = validator.NormalizePhone(form.PhoneNumber)
		profile.EmergencyContact = entity.EmergencyContact{
			Name:         strings.TrimSpace(form.EmergencyName),
			Relationship: strings.TrimSpace(emergencyRelationship),
			PhoneNumber:  validator.NormalizePhone(form.EmergencyPhone),
		}

		user, err := vm.users.UpdateProfile(ctx, &profile)
		if itemDone(vm.scope, vm.Profile, "update profile", user, err, true) {
			vm.post("Profile saved")
		}
	})
}

func (vm *ProfileViewModel) ClearResult() {
	clearResult(vm.Profile)
}
