// Package backend defines how cooking is executed. A Backend runs one
// assignment per chef and reports the outcome through Notify; the scheduler
// owns every state change.
package backend
