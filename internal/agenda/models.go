package agenda

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewTeam is a team that has not been stored yet. The store assigns its ID.
type NewTeam struct {
	Name string `bson:"name"`
}

// Team is a persisted team document.
type Team struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

// NewContact is a contact that has not been stored yet.
type NewContact struct {
	Name  string               `bson:"name"`
	Phone string               `bson:"phone"`
	Teams []primitive.ObjectID `bson:"equipos"`
}

// Contact is a persisted contact document. Teams holds foreign keys into the
// teams collection; they are not guaranteed to resolve.
type Contact struct {
	ID    primitive.ObjectID   `bson:"_id"`
	Name  string               `bson:"name"`
	Phone string               `bson:"phone"`
	Teams []primitive.ObjectID `bson:"equipos"`
}

// TeamView is the API shape of a team.
type TeamView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ContactView is the API shape of a contact. Timezone is derived from the
// phone number at read time and never persisted.
type ContactView struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Phone    string     `json:"phone"`
	Timezone string     `json:"timezone"`
	Teams    []TeamView `json:"equipos"`
}

// HexIDs renders object ids for transport.
func HexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
