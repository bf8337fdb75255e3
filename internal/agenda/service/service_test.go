package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agenda/agenda-service/internal/agenda"
	"github.com/agenda/agenda-service/internal/agenda/repository"
	"github.com/agenda/agenda-service/internal/agenda/validation"
)

type staticTZ string

func (s staticTZ) Timezone(context.Context, string) (string, error) { return string(s), nil }

// failingPull wraps a contact repo whose cascade cleanup always fails.
type failingPull struct {
	*repository.MemoryContactRepo
}

func (failingPull) PullTeam(context.Context, primitive.ObjectID) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestCreateContact_RejectsDuplicatePhone(t *testing.T) {
	ctx := context.Background()
	contacts := repository.NewMemoryContactRepo()
	svc := New(contacts, repository.NewMemoryTeamRepo(), staticTZ("UTC"))

	_, err := svc.CreateContact(ctx, agenda.NewContact{Name: "Ana", Phone: "600"})
	require.NoError(t, err)
	_, err = svc.CreateContact(ctx, agenda.NewContact{Name: "Otra", Phone: "600"})
	require.ErrorIs(t, err, ErrPhoneTaken)

	all, err := contacts.Find(ctx, repository.ContactFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCreateContact_UnknownTeam(t *testing.T) {
	svc := NewMemoryService(staticTZ("UTC"))
	_, err := svc.CreateContact(context.Background(), agenda.NewContact{Name: "Ana", Phone: "600", Teams: []primitive.ObjectID{primitive.NewObjectID()}})
	require.ErrorIs(t, err, ErrTeamNotFound)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateContact(t *testing.T) {
	ctx := context.Background()
	contacts := repository.NewMemoryContactRepo()
	teams := repository.NewMemoryTeamRepo()
	svc := New(contacts, teams, staticTZ("UTC"))

	alpha, err := svc.CreateTeam(ctx, agenda.NewTeam{Name: "Alpha"})
	require.NoError(t, err)
	alphaID, _ := primitive.ObjectIDFromHex(alpha.ID)
	created, err := svc.CreateContact(ctx, agenda.NewContact{Name: "Ana", Phone: "600"})
	require.NoError(t, err)

	// unknown team: nothing written
	_, err = svc.UpdateContact(ctx, validation.ContactUpdate{Phone: "600", Name: "Changed", Teams: []primitive.ObjectID{alphaID, primitive.NewObjectID()}})
	require.ErrorIs(t, err, ErrTeamNotFound)
	stored, err := contacts.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", stored.Name)
	require.Empty(t, stored.Teams)

	upd, err := svc.UpdateContact(ctx, validation.ContactUpdate{Phone: "600", Name: "Ana B", Teams: []primitive.ObjectID{alphaID}})
	require.NoError(t, err)
	require.Equal(t, created.ID, upd.ID)
	require.Equal(t, []primitive.ObjectID{alphaID}, upd.Teams)

	_, err = svc.UpdateContact(ctx, validation.ContactUpdate{Phone: "999", Name: "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTeam_CascadeFailureIsNotSurfaced(t *testing.T) {
	ctx := context.Background()
	teams := repository.NewMemoryTeamRepo()
	svc := New(failingPull{repository.NewMemoryContactRepo()}, teams, staticTZ("UTC"))

	tv, err := svc.CreateTeam(ctx, agenda.NewTeam{Name: "Alpha"})
	require.NoError(t, err)
	id, _ := primitive.ObjectIDFromHex(tv.ID)

	require.NoError(t, svc.DeleteTeam(ctx, id))
	_, err = svc.GetTeam(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.DeleteTeam(ctx, id), ErrNotFound)
}

func TestListContacts_FilterByName(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService(staticTZ("America/New_York"))
	_, err := svc.CreateContact(ctx, agenda.NewContact{Name: "Ana", Phone: "1"})
	require.NoError(t, err)
	_, err = svc.CreateContact(ctx, agenda.NewContact{Name: "Luis", Phone: "2"})
	require.NoError(t, err)

	name := "Luis"
	list, err := svc.ListContacts(ctx, &name)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "America/New_York", list[0].Timezone)

	list, err = svc.ListContacts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
