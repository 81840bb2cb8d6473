// Package session implements the screen flow of the card:
//
//	Initial --(auto-advance)--> NameInput --(name)--> Choice --(style)--> Result --(reset)--> Initial
//
// Transitions only move forward, except Reset. Work that finishes later
// (the auto-advance timer, note generation) is bound to the epoch it was
// started in through a ticket; Reset bumps the epoch so late results from
// a previous pass are dropped.
package session
