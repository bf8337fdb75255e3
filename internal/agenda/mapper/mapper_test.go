package mapper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agenda/agenda-service/internal/agenda"
	"github.com/agenda/agenda-service/internal/agenda/repository"
)

type fakeResolver struct {
	tz    string
	err   error
	calls []string
}

func (f *fakeResolver) Timezone(_ context.Context, phone string) (string, error) {
	f.calls = append(f.calls, phone)
	return f.tz, f.err
}

func TestToTeamView(t *testing.T) {
	id := primitive.NewObjectID()
	v, err := ToTeamView(agenda.Team{ID: id, Name: "Alpha"})
	require.NoError(t, err)
	require.Equal(t, agenda.TeamView{ID: id.Hex(), Name: "Alpha"}, v)

	_, err = ToTeamView(agenda.Team{Name: "ghost"})
	require.ErrorIs(t, err, ErrMissingID)
}

func TestToContactView(t *testing.T) {
	ctx := context.Background()
	teams := repository.NewMemoryTeamRepo()
	a, _ := teams.Insert(ctx, agenda.NewTeam{Name: "Alpha"})
	b, _ := teams.Insert(ctx, agenda.NewTeam{Name: "Beta"})
	dangling := primitive.NewObjectID()

	res := &fakeResolver{tz: "Europe/Madrid"}
	m := New(teams, res)
	c := agenda.Contact{ID: primitive.NewObjectID(), Name: "Ana", Phone: "+34600000001", Teams: []primitive.ObjectID{b.ID, dangling, a.ID}}

	v, err := m.ToContactView(ctx, c)
	require.NoError(t, err)
	require.Equal(t, c.ID.Hex(), v.ID)
	require.Equal(t, "Europe/Madrid", v.Timezone)
	require.Equal(t, []agenda.TeamView{{ID: b.ID.Hex(), Name: "Beta"}, {ID: a.ID.Hex(), Name: "Alpha"}}, v.Teams)
	require.Equal(t, []string{"+34600000001"}, res.calls)
}

func TestToContactView_LookupFailurePropagates(t *testing.T) {
	boom := errors.New("api down")
	m := New(repository.NewMemoryTeamRepo(), &fakeResolver{err: boom})
	_, err := m.ToContactView(context.Background(), agenda.Contact{ID: primitive.NewObjectID(), Phone: "1"})
	require.ErrorIs(t, err, boom)
}
