// Package services holds domain services whose rules span more than one
// aggregate.
//
// The package includes:
//   - BidAwarder: approves a bid on a tender and builds the purchase order
//     the award implies, from the bid lines the customer did not reject
package services
