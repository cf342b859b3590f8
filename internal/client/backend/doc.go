// Package backend defines the storage capability contract (Adapter) and its
// variants.
//
// # Variants
//
// The embedded variant keeps all data in process, mirrored to the persisted
// medium after every mutation, and simulates remote-call latency so callers
// keep a realistic async shape. The remote variant is declared but not
// configured; each of its methods fails with common.ErrBackendUnavailable.
//
// The variant is selected once at startup through Kind and New; it cannot be
// swapped at runtime.
//
// # Ownership invariants
//
// Avatar ownership is enforced here: UpdateUserAvatar rejects urls outside
// the user's owned set, and AddUserAvatar never duplicates an entry of it.
package backend
