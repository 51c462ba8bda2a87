package faceapi

// User is a registered person as echoed by the backend. FaceID is derived
// asynchronously after registration and may be empty for a while.
type User struct {
	ID             string `json:"user_id"`
	FaceID         string `json:"face_id"`
	Name           string `json:"name"`
	Nickname       string `json:"nickname"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	NationalID     string `json:"national_id"`
	EmployeeID     string `json:"employee_id"`
	Address        string `json:"address"`
	Department     string `json:"department"`
	Category       string `json:"category"`
	FormType       string `json:"form_type"`
	DOB            string `json:"dob"`
	GuardianName   string `json:"guardian_name"`
	DisabilityType string `json:"disability_type"`
	CreatedAt      string `json:"created_at"`
}

// RegisterResult is the backend response to a successful registration.
type RegisterResult struct {
	Status string `json:"status"`
	UserID string `json:"user_id"`
	FaceID string `json:"face_id"`
	User   *User  `json:"user"`
}

// RecognizeResult is the backend response to an identification request.
// Recognized=false with a message is a normal outcome, not an error.
type RecognizeResult struct {
	Recognized bool   `json:"recognized"`
	Username   string `json:"username"`
	UserID     string `json:"user_id"`
	Message    string `json:"message"`
}

// StatusResult is a bare status acknowledgement.
type StatusResult struct {
	Status string `json:"status"`
}

type userDetailResponse struct {
	Status string `json:"status"`
	User   *User  `json:"user"`
}
