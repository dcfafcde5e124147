// Package kernel holds the value objects shared by every aggregate of the
// procurement core: UUID identifiers, the Role enum (Customer, Supplier,
// System) and Actor, the (company id, role) pair every command is issued by.
package kernel
