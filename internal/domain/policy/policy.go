// Package policy answers which role may perform which action.
package policy

import (
	"fmt"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
)

type Action string

const (
	ActionManageEvents       Action = "manage_events"
	ActionRegisterTeam       Action = "register_team"
	ActionManageTeams        Action = "manage_teams"
	ActionManagePlayers      Action = "manage_players"
	ActionPublishNews        Action = "publish_news"
	ActionRecordMatchResults Action = "record_match_results"
	ActionReviewRoleRequests Action = "review_role_requests"
	ActionViewAdminPanel     Action = "view_admin_panel"
	ActionEditOwnProfile     Action = "edit_own_profile"
	ActionRequestRoleChange  Action = "request_role_change"
)

var table = map[entity.Role]map[Action]bool{
	entity.Admin: {
		ActionManageEvents:       true,
		ActionRegisterTeam:       true,
		ActionManageTeams:        true,
		ActionManagePlayers:      true,
		ActionPublishNews:        true,
		ActionRecordMatchResults: true,
		ActionReviewRoleRequests: true,
		ActionViewAdminPanel:     true,
		ActionEditOwnProfile:     true,
	},
	entity.Coach: {
		ActionRegisterTeam:      true,
		ActionManageTeams:       true,
		ActionManagePlayers:     true,
		ActionEditOwnProfile:    true,
		ActionRequestRoleChange: true,
	},
	entity.Manager: {
		ActionRegisterTeam:       true,
		ActionManageTeams:        true,
		ActionManagePlayers:      true,
		ActionRecordMatchResults: true,
		ActionEditOwnProfile:     true,
		ActionRequestRoleChange:  true,
	},
	entity.RolePlayer: {
		ActionEditOwnProfile:    true,
		ActionRequestRoleChange: true,
	},
}

func Allowed(role entity.Role, action Action) bool {
	return table[role][action]
}

// Check returns an error wrapping errorz.ErrForbidden when role may not perform action.
func Check(role entity.Role, action Action) error {
	if !Allowed(role, action) {
		return fmt.Errorf("%w: role %q cannot %s", errorz.ErrForbidden, role, action)
	}
	return nil
}

// Actions lists everything role may do.
func Actions(role entity.Role) []Action {
	var out []Action
	for _, a := range all {
		if Allowed(role, a) {
			out = append(out, a)
		}
	}
	return out
}

var all = []Action{
	ActionManageEvents,
	ActionRegisterTeam,
	ActionManageTeams,
	ActionManagePlayers,
	ActionPublishNews,
	ActionRecordMatchResults,
	ActionReviewRoleRequests,
	ActionViewAdminPanel,
	ActionEditOwnProfile,
	ActionRequestRoleChange,
}
