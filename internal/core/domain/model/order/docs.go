// Package order implements the Order aggregate: a customer/supplier order
// whose lines are negotiated by turn-taking revisions until both parties
// agree.
//
// Key business rules:
//   - an order needs at least one line; new lines start Pending
//   - only the party that did not act on a line last may revise it (NotYourTurn)
//   - line transitions follow LineStatusTable; anything else is InvalidTransition
//   - the order status is Fold(lines): never Approved while a line is open or Rejected
//   - Approved orders close; Closed orders accept no further line actions
//   - every state-changing action appends to the order history
package order
