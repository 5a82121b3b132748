// Package scheduler is the kitchen engine. It admits orders into a FIFO
// waiting queue, assigns them to idle chefs, hands each assignment to an
// execution backend and applies the backend's reports. Pool resizes demote
// in-flight orders to the head of the queue and rebuild every chef.
//
// All state lives behind a single mutex; backend reports enter through the
// same lock, so every mutation is serialised.
package scheduler
