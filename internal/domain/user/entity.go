package user

// User represents a user entity in the system.
type User struct {
	ID       int64  // ID is the store-assigned identifier, immutable once set
	Name     string // Name is the display name of the user
	Email    string // Email is the contact address of the user
	Password string // Password is stored exactly as submitted
}

// Filter selects users by equality on any combination of attributes.
// A nil field means the attribute is not filtered on.
type Filter struct {
	ID    *int64
	Name  *string
	Email *string
}

// IsEmpty reports whether no attribute is filtered on.
func (f Filter) IsEmpty() bool {
	return f.ID == nil && f.Name == nil && f.Email == nil
}

// Patch records which mutable attributes a partial update carries.
// Only non-nil fields are applied.
type Patch struct {
	Name     *string
	Email    *string
	Password *string
}

// Apply copies the present fields of p onto u and leaves the rest untouched.
func (p Patch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
}

// IsEmpty reports whether the patch carries no field.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}
