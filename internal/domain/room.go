package domain

// RoomID is a caller-supplied room name. A room exists only while it has
// members; there is no create or delete call anywhere.
type RoomID string
