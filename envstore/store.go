// Package envstore persists named values into the operating system's
// user-scope environment so they survive the setting process and become
// visible to sessions started afterwards.
//
// Two backends exist: a shell-profile store for POSIX platforms and a
// registry store for Windows. Both are exposed through the Store capability
// so the interactive flows stay platform-independent.
package envstore

// Store is the persistent environment-variable capability.
//
// SetPersistent is last-write-wins; ClearPersistent is idempotent and
// succeeds when the name was never stored. Neither operation affects the
// environment of already-running processes. Lookup reads back what the
// persistent store holds, which can differ from the value this process
// inherited from its parent shell.
type Store interface {
	SetPersistent(name, value string) error
	ClearPersistent(name string) error
	Lookup(name string) (value string, ok bool, err error)
}
