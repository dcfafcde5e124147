// Package importbatch models a bulk order import: a JSON payload split into
// order records that are turned into orders one by one, each succeeding or
// failing on its own.
package importbatch
