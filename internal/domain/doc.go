// Package domain contains the core business entities of the calendar:
// tasks with their lifecycle state and deadline, users, and the calendar
// Date value type. It is independent of storage and delivery concerns.
package domain
