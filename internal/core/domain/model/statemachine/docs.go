// Package statemachine provides the typed transition tables behind every
// status in the procurement core. Each aggregate package declares its table
// as a package-level value built from Rule literals:
//
//	var tenderTable = statemachine.NewTable("tender",
//	    statemachine.Rule[Status]{From: Draft, Action: statemachine.Publish, Role: kernel.Customer, To: Published},
//	)
//
// Table.Next answers (current, action, role) with the next status or an
// errs.InvalidTransitionError. Tables expose their rules so tests can check
// every status value of an entity for reachability and terminality.
package statemachine
