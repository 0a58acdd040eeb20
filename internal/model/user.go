package model

// NoContactInfo is returned when a username has no stored contact details.
const NoContactInfo = "No contact info"

// User is a registered account. The username is the map key in users.json,
// so it is not repeated inside the record. Field names match the on-disk
// layout: the hash is stored under "password". Salt is empty for records
// written before salted hashing was introduced; those still authenticate
// against the legacy unsalted digest.
type User struct {
	PasswordHash string `json:"password"`
	Salt         string `json:"salt,omitempty"`
	ContactInfo  string `json:"contact_info"`
}
