package model

// ColumnRoles maps raw CSV column offsets to their resolved meaning.
// All three indices are distinct; Description always comes after Date.
type ColumnRoles struct {
	Date        int
	Money       int
	Description int
}
