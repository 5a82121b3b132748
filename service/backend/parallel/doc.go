// Package parallel cooks orders on per-chef station goroutines.
//
// Every chef of a pool generation gets a station with its own inbox queue.
// The backend publishes cook and cancel commands on the inbox; the station
// works through them in order and publishes a backend.Report on the shared
// outbox, which a relay goroutine forwards to Notify. Stations receive a copy
// of the order and only send ids back.
package parallel
