package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Camera types a category may carry. Categories are descriptive metadata
// only; nothing else keys off these values.
var CameraTypes = []string{"DSLR", "Mirrorless", "Point and Shoot", "Action", "Film"}

type Category struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name" binding:"required"`
	CameraType     string             `bson:"cameraType" json:"cameraType"`
	SensorSize     string             `bson:"sensorSize" json:"sensorSize"`
	PrimaryUseCase string             `bson:"primaryUseCase" json:"primaryUseCase"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func IsValidCameraType(t string) bool {
	for _, v := range CameraTypes {
		if v == t {
			return true
		}
	}
	return false
}
