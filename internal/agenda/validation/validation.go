// Package validation turns decoded request bodies and query parameters into
// typed drafts before anything reaches the store.
package validation

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/agenda/agenda-service/internal/agenda"
)

// ErrInvalidInput wraps every validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ContactRequest is the JSON body of POST and PUT /contact. Teams is nil when
// the field was absent.
type ContactRequest struct {
	Name  string   `json:"name"`
	Phone string   `json:"phone"`
	Teams []string `json:"equipos"`
}

// TeamRequest is the JSON body of POST and PUT /team.
type TeamRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ContactUpdate is a validated PUT /contact body. Phone selects the contact.
type ContactUpdate struct {
	Phone string
	Name  string
	Teams []primitive.ObjectID
}

// TeamUpdate is a validated PUT /team body.
type TeamUpdate struct {
	ID   primitive.ObjectID
	Name string
}

var objectID = validation.By(func(v interface{}) error {
	s, _ := v.(string)
	if !primitive.IsValidObjectID(s) {
		return errors.New("must be a valid id")
	}
	return nil
})

func ParseNewContact(req ContactRequest) (agenda.NewContact, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.Teams, validation.Each(objectID)),
	)
	if err != nil {
		return agenda.NewContact{}, invalid(err)
	}
	return agenda.NewContact{Name: req.Name, Phone: req.Phone, Teams: teamIDs(req.Teams)}, nil
}

func ParseContactUpdate(req ContactRequest) (ContactUpdate, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.Teams, validation.NotNil, validation.Each(objectID)),
	)
	if err != nil {
		return ContactUpdate{}, invalid(err)
	}
	return ContactUpdate{Phone: req.Phone, Name: req.Name, Teams: teamIDs(req.Teams)}, nil
}

func ParseNewTeam(req TeamRequest) (agenda.NewTeam, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
	)
	if err != nil {
		return agenda.NewTeam{}, invalid(err)
	}
	return agenda.NewTeam{Name: req.Name}, nil
}

func ParseTeamUpdate(req TeamRequest) (TeamUpdate, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.ID, validation.Required, objectID),
		validation.Field(&req.Name, validation.Required),
	)
	if err != nil {
		return TeamUpdate{}, invalid(err)
	}
	id, _ := primitive.ObjectIDFromHex(req.ID)
	return TeamUpdate{ID: id, Name: req.Name}, nil
}

// ParseID validates the `id` query parameter.
func ParseID(raw string) (primitive.ObjectID, error) {
	err := validation.Errors{
		"id": validation.Validate(raw, validation.Required, objectID),
	}.Filter()
	if err != nil {
		return primitive.NilObjectID, invalid(err)
	}
	id, _ := primitive.ObjectIDFromHex(raw)
	return id, nil
}

// Invalid wraps a decoding failure so it is reported like any other
// validation error.
func Invalid(err error) error {
	return invalid(err)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
}

// teamIDs converts already validated hex ids, dropping repeats but keeping
// the order of first appearance.
func teamIDs(raw []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(raw))
	seen := make(map[primitive.ObjectID]bool, len(raw))
	for _, s := range raw {
		id, _ := primitive.ObjectIDFromHex(s)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
