package model

// Identity is the acting user of a single request, resolved from the session
// once and carried in the request context.
type Identity struct {
	UserID   uint64
	Username string
}

// Owned is implemented by every record that belongs to exactly one user.
type Owned interface {
	OwnerID() uint64
}

// Owns reports whether actingUserID may view, edit or delete record, which
// holds only for the record's owner.  The storage layer applies no access
// control of its own.
func Owns(record Owned, actingUserID uint64) bool {
	if record == nil {
		return false
	}
	return record.OwnerID() == actingUserID
}
