package models

// Patient is the managed record of an encrypted profile store.
// ID and both timestamps are assigned by the store on insertion.
type Patient struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate string  `json:"birth_date"`
	Gender    string  `json:"gender"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// PatientInput is the caller-supplied shape for creating a patient.
type PatientInput struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate string  `json:"birth_date"`
	Gender    string  `json:"gender"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email,omitempty"`
}

// Validate reports whether all required patient fields are present.
func (in PatientInput) Validate() bool {
	return in.FirstName != "" &&
		in.LastName != "" &&
		in.BirthDate != "" &&
		in.Gender != "" &&
		in.Phone != ""
}
