package app

import (
	"context"

	"github.com/nhu-hockey/nhu-app/internal/adapters/controller/viewmodel"
	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger"
)

// ViewModels builds the view-models of one signed-in user. Closing ctx stops all of their work.
type ViewModels struct {
	Events   *viewmodel.EventViewModel
	Teams    *viewmodel.TeamViewModel
	Players  *viewmodel.PlayerViewModel
	News     *viewmodel.NewsViewModel
	Matches  *viewmodel.MatchViewModel
	Requests *viewmodel.RoleRequestViewModel
	Profile  *viewmodel.ProfileViewModel
}

func (a *App) ViewModels(ctx context.Context, user *entity.User) *ViewModels {
	session := viewmodel.NewSession(user)
	pageSize := a.Settings.Settings.PageSize
	log := logger.MustNamed("viewmodels")

	return &ViewModels{
		Events:   viewmodel.NewEventViewModel(ctx, log.Child("events"), session, a.Events, a.Clock, pageSize),
		Teams:    viewmodel.NewTeamViewModel(ctx, log.Child("teams"), session, a.Teams, a.Clock),
		Players:  viewmodel.NewPlayerViewModel(ctx, log.Child("players"), session, a.Players, a.Clock, session.TeamID),
		News:     viewmodel.NewNewsViewModel(ctx, log.Child("news"), session, a.News, a.Clock, pageSize),
		Matches:  viewmodel.NewMatchViewModel(ctx, log.Child("matches"), session, a.Matches),
		Requests: viewmodel.NewRoleRequestViewModel(ctx, log.Child("requests"), session, a.RoleChanges, a.Clock),
		Profile:  viewmodel.NewProfileViewModel(ctx, log.Child("profile"), session, a.Users, a.Clock),
	}
}

// Close stops every view-model and waits for running work.
func (s *ViewModels) Close() {
	s.Events.Close()
	s.Teams.Close()
	s.Players.Close()
	s.News.Close()
	s.Matches.Close()
	s.Requests.Close()
	s.Profile.Close()
}
