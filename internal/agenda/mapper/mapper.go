// Package mapper converts stored documents into their API shapes.
package mapper

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agenda/agenda-service/internal/agenda"
	"github.com/agenda/agenda-service/internal/agenda/repository"
)

var ErrMissingID = errors.New("stored document has no id")

// TimezoneResolver derives a timezone from a phone number.
type TimezoneResolver interface {
	Timezone(ctx context.Context, phone string) (string, error)
}

// ToTeamView maps a stored team to its view.
func ToTeamView(t agenda.Team) (agenda.TeamView, error) {
	if t.ID.IsZero() {
		return agenda.TeamView{}, ErrMissingID
	}
	return agenda.TeamView{ID: t.ID.Hex(), Name: t.Name}, nil
}

// ToTeamViews maps a list of teams, failing on the first bad document.
func ToTeamViews(teams []agenda.Team) ([]agenda.TeamView, error) {
	out := make([]agenda.TeamView, 0, len(teams))
	for _, t := range teams {
		v, err := ToTeamView(t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Mapper builds contact views. Each call performs one batch team lookup and
// one timezone lookup.
type Mapper struct {
	teams     repository.TeamRepository
	timezones TimezoneResolver
}

func New(teams repository.TeamRepository, timezones TimezoneResolver) *Mapper {
	return &Mapper{teams: teams, timezones: timezones}
}

// ToContactView resolves team references and the timezone of c. Teams are
// listed in reference order; references to missing teams are skipped.
func (m *Mapper) ToContactView(ctx context.Context, c agenda.Contact) (agenda.ContactView, error) {
	if c.ID.IsZero() {
		return agenda.ContactView{}, ErrMissingID
	}
	found, err := m.teams.FindByIDs(ctx, c.Teams)
	if err != nil {
		return agenda.ContactView{}, fmt.Errorf("resolve teams of %s: %w", c.ID.Hex(), err)
	}
	byID := make(map[primitive.ObjectID]agenda.Team, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}
	views := make([]agenda.TeamView, 0, len(c.Teams))
	for _, id := range c.Teams {
		t, ok := byID[id]
		if !ok {
			continue
		}
		v, err := ToTeamView(t)
		if err != nil {
			return agenda.ContactView{}, err
		}
		views = append(views, v)
	}

	tz, err := m.timezones.Timezone(ctx, c.Phone)
	if err != nil {
		return agenda.ContactView{}, fmt.Errorf("timezone of %s: %w", c.ID.Hex(), err)
	}

	return agenda.ContactView{
		ID:       c.ID.Hex(),
		Name:     c.Name,
		Phone:    c.Phone,
		Timezone: tz,
		Teams:    views,
	}, nil
}
