// Package model contains the in-memory representation of kitchen state:
// orders and their lifecycle status, chefs of the current pool generation and
// the read-only snapshot handed to presentation after every change.
//
// The types carry no behaviour beyond small helpers; every mutation happens
// inside the scheduler service, which owns all collections.
package model
