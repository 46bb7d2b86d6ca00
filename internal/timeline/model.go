package timeline

import "time"

// Task is one step of a cultivation plan, Day counted from sowing.
type Task struct {
	Day     int    `json:"day" validate:"gte=0,lte=730"`
	Title   string `json:"title" validate:"required,max=128"`
	Details string `json:"details"`
}

// Timeline is the cultivation plan for one crop, keyed by scientific name.
type Timeline struct {
	ID             uint      `json:"id"`
	ScientificName string    `json:"scientific_name"`
	Tasks          []Task    `json:"tasks"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TimelineInput struct {
	ScientificName string `json:"scientific_name" validate:"required,max=128"`
	Tasks          []Task `json:"tasks" validate:"required,min=1,dive"`
}
