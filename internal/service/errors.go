// Package service provides the business logic for user onboarding and
// component configuration, delegating persistence to repositories.
package service

// ValidationError reports malformed or missing input. It is rejected at
// the service boundary before any store access.
type ValidationError string

// Error returns the human-readable validation message.
func (e ValidationError) Error() string { return string(e) }
