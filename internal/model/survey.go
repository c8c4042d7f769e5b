package model

import "time"

// Survey is a catalog entry a dashboard can filter on
type Survey struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Team      string     `json:"team" bson:"team"`
	Type      SurveyType `json:"type" bson:"type"`
	Title     string     `json:"title" bson:"title"`
	App       string     `json:"app,omitempty" bson:"app,omitempty"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}
