package models

// User is an account record. PasswordHash is an argon2id digest, or the
// placeholder marker for the third-party account. DOB uses common.DateLayout.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	DOB          string
	Phone        string
}

// Profile is the externally visible subset of User.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	DOB   string `json:"dob"`
	Phone string `json:"phone"`
}

// Profile returns the fields a user may see about themselves.
func (u *User) Profile() Profile {
	return Profile{Name: u.Name, Email: u.Email, DOB: u.DOB, Phone: u.Phone}
}
