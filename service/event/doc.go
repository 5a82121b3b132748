// Package event fans kitchen state changes out to observers. The scheduler
// publishes an Event carrying a model.Snapshot after each mutation and a
// Listener hands it to the presentation callback.
package event
