package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/agenda/agenda-service/internal/agenda"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoContactRepo stores contacts in a MongoDB collection.
type MongoContactRepo struct {
	col *mongo.Collection
}

func NewMongoContactRepo(col *mongo.Collection) *MongoContactRepo {
	return &MongoContactRepo{col: col}
}

// EnsureIndexes creates the lookup indexes used by the filters below. Phone
// is deliberately not unique: uniqueness is only checked on insert.
func (m *MongoContactRepo) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "phone", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "equipos", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create contact indexes: %w", err)
	}
	return nil
}

func (m *MongoContactRepo) Find(ctx context.Context, f ContactFilter) ([]agenda.Contact, error) {
	filter := bson.M{}
	if f.Name != nil {
		filter["name"] = *f.Name
	}
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []agenda.Contact{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoContactRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*agenda.Contact, error) {
	return m.findOne(ctx, bson.M{"_id": id})
}

func (m *MongoContactRepo) FindByPhone(ctx context.Context, phone string) (*agenda.Contact, error) {
	return m.findOne(ctx, bson.M{"phone": phone})
}

func (m *MongoContactRepo) findOne(ctx context.Context, filter bson.M) (*agenda.Contact, error) {
	var c agenda.Contact
	if err := m.col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (m *MongoContactRepo) Insert(ctx context.Context, c agenda.NewContact) (*agenda.Contact, error) {
	if c.Teams == nil {
		c.Teams = []primitive.ObjectID{}
	}
	res, err := m.col.InsertOne(ctx, c)
	if err != nil {
		return nil, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return &agenda.Contact{ID: id, Name: c.Name, Phone: c.Phone, Teams: c.Teams}, nil
}

func (m *MongoContactRepo) UpdateByPhone(ctx context.Context, phone, name string, teams []primitive.ObjectID) (*agenda.Contact, error) {
	if teams == nil {
		teams = []primitive.ObjectID{}
	}
	update := bson.M{"$set": bson.M{"name": name, "equipos": teams}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var c agenda.Contact
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"phone": phone}, update, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (m *MongoContactRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoContactRepo) PullTeam(ctx context.Context, teamID primitive.ObjectID) (int64, error) {
	res, err := m.col.UpdateMany(ctx, bson.M{"equipos": teamID}, bson.M{"$pull": bson.M{"equipos": teamID}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// MongoTeamRepo stores teams in a MongoDB collection.
type MongoTeamRepo struct {
	col *mongo.Collection
}

func NewMongoTeamRepo(col *mongo.Collection) *MongoTeamRepo {
	return &MongoTeamRepo{col: col}
}

func (m *MongoTeamRepo) List(ctx context.Context) ([]agenda.Team, error) {
	return m.find(ctx, bson.M{})
}

func (m *MongoTeamRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]agenda.Team, error) {
	if len(ids) == 0 {
		return []agenda.Team{}, nil
	}
	return m.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (m *MongoTeamRepo) find(ctx context.Context, filter bson.M) ([]agenda.Team, error) {
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := []agenda.Team{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoTeamRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*agenda.Team, error) {
	var t agenda.Team
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (m *MongoTeamRepo) Insert(ctx context.Context, t agenda.NewTeam) (*agenda.Team, error) {
	res, err := m.col.InsertOne(ctx, t)
	if err != nil {
		return nil, err
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return &agenda.Team{ID: id, Name: t.Name}, nil
}

func (m *MongoTeamRepo) Update(ctx context.Context, id primitive.ObjectID, name string) (*agenda.Team, error) {
	res, err := m.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &agenda.Team{ID: id, Name: name}, nil
}

func (m *MongoTeamRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
