package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/promanage/core/internal/domain/entities"
	"github.com/promanage/core/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(coll *mongo.Collection) ports.UserRepository {
	return &UserRepositoryImpl{coll: coll}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.GroupPeople == nil {
		user.GroupPeople = []primitive.ObjectID{}
	}
	if user.Tasks == nil {
		user.Tasks = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entities.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepositoryImpl) findOne(ctx context.Context, filter bson.M) (*entities.User, error) {
	var user entities.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}

	users, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*entities.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	ordered := make([]*entities.User, 0, len(users))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}

	return ordered, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*entities.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *UserRepositoryImpl) find(ctx context.Context, filter bson.M) ([]*entities.User, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*entities.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	return users, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, update ports.UserUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.PasswordHash != nil {
		set["password"] = *update.PasswordHash
	}

	result, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entities.ErrEmailTaken
		}
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return entities.ErrUserNotFound
	}

	return nil
}

func (r *UserRepositoryImpl) AddGroupMember(ctx context.Context, ownerID, memberID primitive.ObjectID) error {
	return r.updateOne(ctx, ownerID, bson.M{"$addToSet": bson.M{"groupPeople": memberID}})
}

func (r *UserRepositoryImpl) PushTask(ctx context.Context, userID, taskID primitive.ObjectID) error {
	return r.updateOne(ctx, userID, bson.M{"$push": bson.M{"tasks": taskID}})
}

func (r *UserRepositoryImpl) PullTask(ctx context.Context, userIDs []primitive.ObjectID, taskID primitive.ObjectID) error {
	if len(userIDs) == 0 {
		return nil
	}

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": userIDs}},
		bson.M{"$pull": bson.M{"tasks": taskID}},
	)
	if err != nil {
		return fmt.Errorf("pull task from users: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	result, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return entities.ErrUserNotFound
	}

	return nil
}
