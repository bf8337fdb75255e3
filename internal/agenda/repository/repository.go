package repository

import (
	"context"
	"errors"

	"github.com/agenda/agenda-service/internal/agenda"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("not found")
)

// ContactFilter narrows Find. A nil Name matches every contact.
type ContactFilter struct {
	Name *string
}

// ContactRepository is the persistence accessor for the contacts collection.
type ContactRepository interface {
	Find(ctx context.Context, f ContactFilter) ([]agenda.Contact, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*agenda.Contact, error)
	FindByPhone(ctx context.Context, phone string) (*agenda.Contact, error)
	Insert(ctx context.Context, c agenda.NewContact) (*agenda.Contact, error)
	// UpdateByPhone sets name and teams on the contact owning phone and
	// returns the updated document, or ErrNotFound when nothing matched.
	UpdateByPhone(ctx context.Context, phone, name string, teams []primitive.ObjectID) (*agenda.Contact, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// PullTeam removes teamID from every contact's team list and reports how
	// many contacts changed.
	PullTeam(ctx context.Context, teamID primitive.ObjectID) (int64, error)
}

// TeamRepository is the persistence accessor for the teams collection.
type TeamRepository interface {
	List(ctx context.Context) ([]agenda.Team, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*agenda.Team, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]agenda.Team, error)
	Insert(ctx context.Context, t agenda.NewTeam) (*agenda.Team, error)
	Update(ctx context.Context, id primitive.ObjectID, name string) (*agenda.Team, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
