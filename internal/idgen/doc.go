// Package idgen wraps the UUID generator so that it can be stubbed in tests.
// Kitchen instance ids and event ids come from here; order ids do not, they
// are sequential integers owned by the scheduler.
package idgen
