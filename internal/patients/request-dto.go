package patients

// SubmitPatientRequest is the typed intake form. Everything the form can
// carry is declared and validated here before the allocator or storage
// layer sees it.
type SubmitPatientRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=1,max=100"`
	LastName    string `json:"last_name" validate:"required,min=1,max=100"`
	DateOfBirth string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Age         int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"` // used only when date_of_birth is absent
	Gender      string `json:"gender" validate:"required,oneof=male female other"`

	CountryCode string `json:"country_code,omitempty" validate:"omitempty,max=8"`
	Phone       string `json:"phone" validate:"required,min=5,max=20"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Address     string `json:"address,omitempty" validate:"max=500"`

	Symptoms   string `json:"symptoms,omitempty" validate:"max=2000"`
	Department string `json:"department,omitempty" validate:"max=100"`

	EmergencyName     string `json:"emergency_name,omitempty" validate:"max=100"`
	EmergencyPhone    string `json:"emergency_phone,omitempty" validate:"max=20"`
	EmergencyRelation string `json:"emergency_relation,omitempty" validate:"max=50"`

	FacilityID string `json:"facility_id" validate:"required,uuid"`
}

// PatientListQuery filters the staff listing endpoints
type PatientListQuery struct {
	Facility   string `form:"facility"`
	Date       string `form:"date"` // YYYY-MM-DD
	SlotNumber int    `form:"slot_number"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}
