package repository

import (
	"context"
	"testing"

	"github.com/agenda/agenda-service/internal/agenda"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryTeamRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryTeamRepo()

	a, err := r.Insert(ctx, agenda.NewTeam{Name: "Alpha"})
	require.NoError(t, err)
	require.False(t, a.ID.IsZero())
	b, err := r.Insert(ctx, agenda.NewTeam{Name: "Beta"})
	require.NoError(t, err)

	got, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Alpha", got.Name)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, a.ID, list[0].ID)

	some, err := r.FindByIDs(ctx, []primitive.ObjectID{b.ID, primitive.NewObjectID()})
	require.NoError(t, err)
	require.Len(t, some, 1)
	require.Equal(t, "Beta", some[0].Name)

	upd, err := r.Update(ctx, a.ID, "Alpha 2")
	require.NoError(t, err)
	require.Equal(t, "Alpha 2", upd.Name)

	_, err = r.Update(ctx, primitive.NewObjectID(), "x")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Delete(ctx, a.ID))
	require.ErrorIs(t, r.Delete(ctx, a.ID), ErrNotFound)
	_, err = r.FindByID(ctx, a.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryContactRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryContactRepo()
	team := primitive.NewObjectID()

	c, err := r.Insert(ctx, agenda.NewContact{Name: "Ana", Phone: "+34600000001", Teams: []primitive.ObjectID{team}})
	require.NoError(t, err)
	_, err = r.Insert(ctx, agenda.NewContact{Name: "Luis", Phone: "+34600000002"})
	require.NoError(t, err)

	name := "Ana"
	found, err := r.Find(ctx, ContactFilter{Name: &name})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, c.ID, found[0].ID)

	all, err := r.Find(ctx, ContactFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	byPhone, err := r.FindByPhone(ctx, "+34600000001")
	require.NoError(t, err)
	require.Equal(t, c.ID, byPhone.ID)
	_, err = r.FindByPhone(ctx, "+0")
	require.ErrorIs(t, err, ErrNotFound)

	upd, err := r.UpdateByPhone(ctx, "+34600000001", "Ana María", nil)
	require.NoError(t, err)
	require.Equal(t, "Ana María", upd.Name)
	require.Empty(t, upd.Teams)
	_, err = r.UpdateByPhone(ctx, "+0", "x", nil)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Delete(ctx, c.ID))
	require.ErrorIs(t, r.Delete(ctx, c.ID), ErrNotFound)
}

func TestMemoryContactRepoPullTeam(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryContactRepo()
	gone, kept := primitive.NewObjectID(), primitive.NewObjectID()

	a, err := r.Insert(ctx, agenda.NewContact{Name: "A", Phone: "1", Teams: []primitive.ObjectID{gone, kept}})
	require.NoError(t, err)
	_, err = r.Insert(ctx, agenda.NewContact{Name: "B", Phone: "2", Teams: []primitive.ObjectID{kept}})
	require.NoError(t, err)

	n, err := r.PullTeam(ctx, gone)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, []primitive.ObjectID{kept}, got.Teams)
}
