// Package tender implements the Tender aggregate: a customer's request for
// bids, its invitee set and the suppliers' bids with their lines.
//
// Key business rules:
//   - Draft -> Published -> Evaluating -> Completed, or Cancelled before completion
//   - Invited tenders publish only with invitees and take bids only from them
//   - inviting is idempotent; the invitee set keeps first-invitation order
//   - bids are accepted only while Published
//   - cancelling force-rejects every open bid
//   - at most one bid is Approved; approving it rejects its open siblings
//     and completes the tender, a second approval fails with AlreadyAwarded
package tender
