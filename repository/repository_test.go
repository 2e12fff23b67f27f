package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/saikrishna7004/campus-360-backend/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestOrderFilterDoc(t *testing.T) {
	user := primitive.NewObjectID()
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	before := from.AddDate(0, 0, 7)
	after := from.Add(time.Hour)

	tests := []struct {
		name   string
		filter models.OrderFilter
		want   bson.M
	}{
		{name: "empty", filter: models.OrderFilter{}, want: bson.M{}},
		{
			name:   "owner with single status",
			filter: models.OrderFilter{User: &user, Statuses: []models.OrderStatus{models.StatusPreparing}},
			want:   bson.M{"user": user, "status": models.StatusPreparing},
		},
		{
			name: "vendor queue since last fetch",
			filter: models.OrderFilter{
				Vendor:       models.VendorCanteen,
				Statuses:     []models.OrderStatus{models.StatusPreparing, models.StatusReady},
				UpdatedAfter: &after,
			},
			want: bson.M{
				"vendor":    models.VendorCanteen,
				"status":    bson.M{"$in": []models.OrderStatus{models.StatusPreparing, models.StatusReady}},
				"updatedAt": bson.M{"$gt": after},
			},
		},
		{
			name:   "created window",
			filter: models.OrderFilter{CreatedFrom: &from, CreatedBefore: &before},
			want:   bson.M{"createdAt": bson.M{"$gte": from, "$lt": before}},
		},
		{
			name:   "open ended window",
			filter: models.OrderFilter{CreatedBefore: &before},
			want:   bson.M{"createdAt": bson.M{"$lt": before}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orderFilterDoc(tt.filter))
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("find: %w", mongo.ErrNoDocuments)), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translate(dup), ErrDuplicate)

	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestActiveBorrows(t *testing.T) {
	user := primitive.NewObjectID()
	assert.Equal(t, bson.M{"userId": user, "returnDate": nil}, activeBorrows(user))
}
