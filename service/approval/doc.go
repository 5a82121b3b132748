// Package approval implements an optional human-in-the-loop gate for pool
// resizes. A resize above the confirmation threshold files a Request and
// waits until an approver records a Decision or the wait times out.
package approval
