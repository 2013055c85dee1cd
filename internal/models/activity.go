package models

import "time"

type LogFilter struct {
	Fields    map[string]string `json:"fields"`
	Timestamp string            `json:"timestamp"`
}

type Activity struct {
	Message string    `json:"message"`
	Object  any       `json:"object"`
	Filter  LogFilter `json:"filter"`
}

type ActivityQueryParams struct {
	Action     string `json:"action"      validate:"omitempty,max=64"`
	ObjectType string `json:"object_type" validate:"omitempty,max=64"`
}

// ActivityRecord is an operator action as returned by the activity endpoint.
type ActivityRecord struct {
	Message    string         `json:"message"`
	Action     string         `json:"action"`
	ObjectType string         `json:"object_type"`
	ObjectID   string         `json:"object_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Object     map[string]any `json:"object,omitempty"`
}
