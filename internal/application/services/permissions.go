package services

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/promanage/core/internal/domain/entities"
)

// AssertOwner succeeds only when the requester is the resource owner.
func AssertOwner(requester entities.Identity, ownerID primitive.ObjectID) error {
	if requester.UserID == ownerID {
		return nil
	}
	return entities.Unauthorized("You are unauthorized to do this operation")
}

// parseID maps malformed ids to NotFound: an id that cannot exist was not found.
func parseID(hex, notFoundMsg string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, entities.NotFound(notFoundMsg)
	}
	return id, nil
}
