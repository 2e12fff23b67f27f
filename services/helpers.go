package services

import (
	"errors"
	"math"

	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// principalUserID returns the caller's user id as a document reference.
func principalUserID(p auth.Principal) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return primitive.NilObjectID, apperrors.Unauthorized("Invalid token")
	}
	return id, nil
}

func parseObjectID(id, what string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.InvalidRequest("Invalid " + what + " id")
	}
	return oid, nil
}

// notFoundOr maps repository.ErrNotFound to a NotFound error and anything else to a ServerError.
func notFoundOr(err error, notFoundMsg, failMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(notFoundMsg)
	}
	return apperrors.ServerError(failMsg, err)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
