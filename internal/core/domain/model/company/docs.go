// Package company implements the Company aggregate: a trading party with a
// market classification and an approval state managed by the portal.
package company
