package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// CredentialFormat records how users.password is stored.
type CredentialFormat string

const (
	CredentialPlain  CredentialFormat = "plain"
	CredentialBcrypt CredentialFormat = "bcrypt"
)

type Credential struct {
	Secret string
	Format CredentialFormat
}

type User struct {
	ID           int    `json:"UserId"`
	Username     string `json:"Username"`
	EmployeeName string `json:"EmployeeName"`
	Role         string `json:"Role"`
	DepartmentID int    `json:"DepartmentId"`
	Department   string `json:"Department"`
}
