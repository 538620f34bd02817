package models

// Owned is a record carrying exactly one owning user.
type Owned interface {
	OwnerID() uint
}

// BelongsTo reports whether record is owned by userID. A zero userID never owns anything.
func BelongsTo(record Owned, userID uint) bool {
	if record == nil || userID == 0 {
		return false
	}
	return record.OwnerID() == userID
}
