package services

import (
	"fmt"

	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/models"
)

// allowedTransitions is the forward-only edge set; completed and cancelled are terminal.
var allowedTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPreparing: {models.StatusReady, models.StatusCancelled},
	models.StatusReady:     {models.StatusCompleted, models.StatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransition error for moves outside the edge set.
func ValidateTransition(from, to models.OrderStatus) error {
	if CanTransition(from, to) {
		return nil
	}
	if from.Terminal() {
		return apperrors.InvalidTransition(fmt.Sprintf("Order is already %s", from))
	}
	return apperrors.InvalidTransition(fmt.Sprintf("Cannot change order status from %s to %s", from, to))
}
