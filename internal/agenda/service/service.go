package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agenda/agenda-service/internal/agenda"
	"github.com/agenda/agenda-service/internal/agenda/mapper"
	"github.com/agenda/agenda-service/internal/agenda/repository"
	"github.com/agenda/agenda-service/internal/agenda/validation"
	"github.com/agenda/agenda-service/pkg/logger"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrTeamNotFound = fmt.Errorf("team %w", ErrNotFound)
	ErrPhoneTaken   = errors.New("a contact with this phone already exists")
)

// Service defines the agenda operations used by the handler layer.
type Service interface {
	ListContacts(ctx context.Context, name *string) ([]agenda.ContactView, error)
	CreateContact(ctx context.Context, c agenda.NewContact) (*agenda.Contact, error)
	UpdateContact(ctx context.Context, u validation.ContactUpdate) (*agenda.Contact, error)
	DeleteContact(ctx context.Context, id primitive.ObjectID) error

	ListTeams(ctx context.Context) ([]agenda.TeamView, error)
	GetTeam(ctx context.Context, id primitive.ObjectID) (agenda.TeamView, error)
	CreateTeam(ctx context.Context, t agenda.NewTeam) (agenda.TeamView, error)
	UpdateTeam(ctx context.Context, u validation.TeamUpdate) (agenda.TeamView, error)
	DeleteTeam(ctx context.Context, id primitive.ObjectID) error
}

// New returns a Service over the given repositories.
func New(contacts repository.ContactRepository, teams repository.TeamRepository, tz mapper.TimezoneResolver) Service {
	return &agendaService{contacts: contacts, teams: teams, mapper: mapper.New(teams, tz)}
}

// NewMongoService returns a Service backed by the contacts and teams
// collections. Caller owns the client behind them.
func NewMongoService(contacts, teams *mongo.Collection, tz mapper.TimezoneResolver) Service {
	return New(repository.NewMongoContactRepo(contacts), repository.NewMongoTeamRepo(teams), tz)
}

// NewMemoryService returns a Service backed by in-memory repositories.
func NewMemoryService(tz mapper.TimezoneResolver) Service {
	return New(repository.NewMemoryContactRepo(), repository.NewMemoryTeamRepo(), tz)
}

type agendaService struct {
	contacts repository.ContactRepository
	teams    repository.TeamRepository
	mapper   *mapper.Mapper
}

func (s *agendaService) ListContacts(ctx context.Context, name *string) ([]agenda.ContactView, error) {
	list, err := s.contacts.Find(ctx, repository.ContactFilter{Name: name})
	if err != nil {
		return nil, err
	}
	out := make([]agenda.ContactView, 0, len(list))
	for _, c := range list {
		v, err := s.mapper.ToContactView(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *agendaService) CreateContact(ctx context.Context, c agenda.NewContact) (*agenda.Contact, error) {
	_, err := s.contacts.FindByPhone(ctx, c.Phone)
	switch {
	case err == nil:
		return nil, ErrPhoneTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	if err := s.requireTeams(ctx, c.Teams); err != nil {
		return nil, err
	}
	return s.contacts.Insert(ctx, c)
}

func (s *agendaService) UpdateContact(ctx context.Context, u validation.ContactUpdate) (*agenda.Contact, error) {
	if err := s.requireTeams(ctx, u.Teams); err != nil {
		return nil, err
	}
	c, err := s.contacts.UpdateByPhone(ctx, u.Phone, u.Name, u.Teams)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *agendaService) DeleteContact(ctx context.Context, id primitive.ObjectID) error {
	return notFound(s.contacts.Delete(ctx, id))
}

func (s *agendaService) ListTeams(ctx context.Context) ([]agenda.TeamView, error) {
	list, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.ToTeamViews(list)
}

func (s *agendaService) GetTeam(ctx context.Context, id primitive.ObjectID) (agenda.TeamView, error) {
	t, err := s.teams.FindByID(ctx, id)
	if err != nil {
		return agenda.TeamView{}, notFound(err)
	}
	return mapper.ToTeamView(*t)
}

func (s *agendaService) CreateTeam(ctx context.Context, nt agenda.NewTeam) (agenda.TeamView, error) {
	t, err := s.teams.Insert(ctx, nt)
	if err != nil {
		return agenda.TeamView{}, err
	}
	return mapper.ToTeamView(*t)
}

func (s *agendaService) UpdateTeam(ctx context.Context, u validation.TeamUpdate) (agenda.TeamView, error) {
	t, err := s.teams.Update(ctx, u.ID, u.Name)
	if err != nil {
		return agenda.TeamView{}, notFound(err)
	}
	return mapper.ToTeamView(*t)
}

// DeleteTeam removes the team and then pulls it from every contact. The two
// writes are independent: a failed cleanup is logged, not returned.
func (s *agendaService) DeleteTeam(ctx context.Context, id primitive.ObjectID) error {
	if err := s.teams.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	n, err := s.contacts.PullTeam(ctx, id)
	if err != nil {
		logger.Warnf("team %s deleted but contact cleanup failed: %v", id.Hex(), err)
		return nil
	}
	logger.Debugf("team %s removed from %d contacts", id.Hex(), n)
	return nil
}

// requireTeams fails with ErrTeamNotFound unless every id names a stored team.
// ids are expected to be distinct.
func (s *agendaService) requireTeams(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.teams.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	have := make(map[primitive.ObjectID]bool, len(found))
	for _, t := range found {
		have[t.ID] = true
	}
	for _, id := range ids {
		if !have[id] {
			return fmt.Errorf("%w: %s", ErrTeamNotFound, id.Hex())
		}
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
