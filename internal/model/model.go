package model

// Contact is the data structure for a person that we know.
// Email and Address are optional and nil when not stored.
type Contact struct {
	Id      int64   `json:"id"                db:"id"`
	Name    string  `json:"name"              db:"name"`
	Phone   string  `json:"phone"             db:"phone"`
	Email   *string `json:"email,omitempty"   db:"email"`
	Address *string `json:"address,omitempty" db:"address"`
}

// ContactUpdate holds the values of a partial update. A nil field is left untouched.
type ContactUpdate struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
}

// IsEmpty reports whether the update does not carry a single value.
func (u ContactUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Email == nil && u.Address == nil
}

// StringOrEmpty dereferences an optional column value.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
