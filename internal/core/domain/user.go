package domain

// User is a bank customer who can own accounts and log in.
// DateOfBirth is carried as yyyyMMdd, matching the wire and storage formats.
type User struct {
	UserID       int64  `json:"userID"`
	LoginID      string `json:"loginID"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	NameEn       string `json:"nameEn,omitempty"`
	DateOfBirth  string `json:"dateOfBirth"`
	AuditFields
}
