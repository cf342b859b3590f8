// Package storage provides the persisted key-value medium the client core
// durably writes to. Values are whole-collection snapshots; there are no
// transactions and no partial updates on the medium.
package storage

// Keys of the logical collections stored on the medium. The backend owns the
// backend-prefixed keys exclusively; no other component touches them.
const (
	KeyBackendUsers      = "backend_users"
	KeyBackendCharacters = "backend_characters"

	KeyUserInfo   = "user_info"  // store's session projection of the current user
	KeyCharacters = "characters" // shared character collection written by merge-on-save
	KeyHistory    = "history"    // map of user id -> ledger
	KeyCurrentUser = "current_user"
)

// Medium is a synchronous get/set/remove key-value store.
//
// Get reports presence explicitly: a missing key is (nil, false, nil), never
// an error.
type Medium interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
	Close() error
}
