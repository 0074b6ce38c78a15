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

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	coll *mongo.Collection
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(coll *mongo.Collection) ports.TaskRepository {
	return &TaskRepositoryImpl{coll: coll}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	if task.AssignTo == nil {
		task.AssignTo = []primitive.ObjectID{}
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*entities.Task, error) {
	var task entities.Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*entities.Task, error) {
	if len(ids) == 0 {
		return []*entities.Task{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []*entities.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	byID := make(map[primitive.ObjectID]*entities.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	// user task lists may repeat an id when the creator assigns the task to themselves
	seen := make(map[primitive.ObjectID]bool, len(ids))
	ordered := make([]*entities.Task, 0, len(tasks))
	for _, id := range ids {
		if t, ok := byID[id]; ok && !seen[id] {
			seen[id] = true
			ordered = append(ordered, t)
		}
	}

	return ordered, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, update ports.TaskUpdate) (*entities.Task, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Priority != nil {
		set["priority"] = *update.Priority
	}
	if update.Checklist != nil {
		set["checklist"] = update.Checklist
	}
	if update.DueDate != nil {
		set["dueDate"] = *update.DueDate
	}
	if update.TaskType != nil {
		set["taskType"] = *update.TaskType
	}
	if update.AssignTo != nil {
		set["assignTo"] = update.AssignTo
	}

	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task entities.Task
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) SetTaskType(ctx context.Context, id primitive.ObjectID, taskType entities.TaskType) error {
	result, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"taskType": taskType}})
	if err != nil {
		return fmt.Errorf("update task type: %w", err)
	}
	if result.MatchedCount == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) SetSubTaskDone(ctx context.Context, taskID, subTaskID primitive.ObjectID, done bool) (*entities.SubTask, error) {
	filter := bson.M{"_id": taskID, "checklist._id": subTaskID}
	update := bson.M{"$set": bson.M{"checklist.$.done": done}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var task entities.Task
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&task)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("update sub task: %w", err)
		}
		// distinguish a missing task from a missing checklist entry
		if _, err := r.GetByID(ctx, taskID); err != nil {
			return nil, err
		}
		return nil, entities.ErrSubTaskNotFound
	}

	sub := task.SubTask(subTaskID)
	if sub == nil {
		return nil, entities.ErrSubTaskNotFound
	}

	return sub, nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}
