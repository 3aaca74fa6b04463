package model

import "time"

type Course struct {
	ID              string       `json:"id"`
	Slug            string       `json:"slug"`
	Title           string       `json:"title"`
	AuthorID        string       `json:"-"`
	Author          *UserBrief   `json:"author,omitempty"`
	IsActive        bool         `json:"is_active"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	ModulesCount    int          `json:"modules_count"`
	EnrollmentCount int          `json:"enrollment_count"`
	Modules         []Module     `json:"modules,omitempty"`     // Detail view only
	Enrollments     []Enrollment `json:"enrollments,omitempty"` // Detail view only
}

type Enrollment struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	CourseID  string     `json:"-"`
	User      *UserBrief `json:"user,omitempty"`
	Course    *Course    `json:"course,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type Module struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course"`
	Title     string    `json:"title"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	Tasks     []Task    `json:"tasks"`
}

type Task struct {
	ID              string        `json:"id"`
	ModuleID        string        `json:"module"`
	Title           string        `json:"title"`
	Order           int           `json:"order"`
	TaskText        string        `json:"task_text"`
	IsActive        bool          `json:"is_active"`
	CreatedAt       time.Time     `json:"created_at"`
	InputOutputs    []InputOutput `json:"input_outputs"`
	SubmissionCount int           `json:"submission_count"`
}

// InputOutput is one test fixture pair of a task.
type InputOutput struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
