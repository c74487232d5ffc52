// Package deeplink holds the app's named routes and maps shared links onto them.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/nhu-hockey/nhu-app/internal/domain/common/errorz"
)

type Route string

const (
	RouteHome             Route = "home"
	RouteTeamRegistration Route = "team_registration"
	RouteEventEntries     Route = "event_entries"
	RoutePlayerManagement Route = "player_management"
	RouteNewsFeed         Route = "news_feed"
	RouteProfile          Route = "profile"
	RouteEventDetail      Route = "event_detail"
	RouteNewsDetail       Route = "news_detail"
	RouteTeamDetail       Route = "team_detail"
)

// Kind is the first path segment of a shared link.
type Kind string

const (
	KindEvent Kind = "events"
	KindNews  Kind = "news"
	KindTeam  Kind = "teams"
)

var detailRoutes = map[Kind]Route{
	KindEvent: RouteEventDetail,
	KindNews:  RouteNewsDetail,
	KindTeam:  RouteTeamDetail,
}

var listRoutes = map[Kind]Route{
	KindEvent: RouteEventEntries,
	KindNews:  RouteNewsFeed,
	KindTeam:  RouteTeamRegistration,
}

// Target is a resolved navigation destination.
type Target struct {
	Route Route
	ID    string
}

// Path renders the target in the navigator's "route/{id}" form.
func (t Target) Path() string {
	if t.ID == "" {
		return string(t.Route)
	}
	return fmt.Sprintf("%s/%s", t.Route, t.ID)
}

// Resolve maps an incoming link to a route. The ID is taken from the path
// segment after the kind, or from the "id" query parameter.
// Links without a known kind resolve to home.
func Resolve(rawURL string) (Target, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", errorz.ErrInvalidInput, err)
	}

	path := u.Path
	// custom schemes such as nhu://events/123 put the kind into the host
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" && u.Host != "" {
		path = u.Host + "/" + path
	}
	segments := splitPath(path)
	if len(segments) == 0 {
		return Target{Route: RouteHome}, nil
	}

	kind := Kind(strings.ToLower(segments[0]))
	detail, ok := detailRoutes[kind]
	if !ok {
		return Target{Route: RouteHome}, nil
	}

	id := u.Query().Get("id")
	if len(segments) > 1 {
		id = segments[len(segments)-1]
	}
	if id == "" {
		return Target{Route: listRoutes[kind]}, nil
	}
	return Target{Route: detail, ID: id}, nil
}

// Link builds the shareable https link resolved back by Resolve.
func Link(host string, kind Kind, id string) string {
	u := url.URL{Scheme: "https", Host: host, Path: "/" + string(kind) + "/" + url.PathEscape(id)}
	return u.String()
}

func splitPath(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
