// Package messaging defines the queue abstraction used for every
// asynchronous hand-off in the kitchen: scheduler to station inboxes, station
// outboxes back to the scheduler and snapshot fan-out to observers.
package messaging
