// Package prompts holds the hardcoded instructions and response
// specifications for the model-backed pipeline tasks.
package prompts

import "errors"

// ErrInvalidTask indicates an unrecognized prompt task.
var ErrInvalidTask = errors.New("task must be extract-date, describe-actions, or assign-control")

// Task identifies a model-backed pipeline task.
type Task string

const (
	TaskExtractDate     Task = "extract-date"
	TaskDescribeActions Task = "describe-actions"
	TaskAssignControl   Task = "assign-control"
)

// Instructions returns the hardcoded instructions for a task.
// Returns ErrInvalidTask if the task is not recognized.
func Instructions(task Task) (string, error) {
	text, ok := instructions[task]
	if !ok {
		return "", ErrInvalidTask
	}
	return text, nil
}

// Spec returns the hardcoded response specification for a task.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidTask if the task is not recognized.
func Spec(task Task) (string, error) {
	text, ok := specs[task]
	if !ok {
		return "", ErrInvalidTask
	}
	return text, nil
}
