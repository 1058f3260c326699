// Package session defines the account snapshot and session value types
// shared by the credential store, the backend client, and the manager
// facade. It holds no state and performs no I/O.
package session
