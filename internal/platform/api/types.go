package api

// Wire types for the backend REST API. Field names follow the backend's
// JSON payloads exactly; the client never renames them.

// Address is the two-line free-text practice address of a doctor.
type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// Doctor is one entry of the doctor directory. Immutable from the
// client's perspective.
type Doctor struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email,omitempty"`
	Image      string  `json:"image"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fees       float64 `json:"fees"`
	Address    Address `json:"address"`
	Available  bool    `json:"available"`
}

// UserProfile is the authenticated patient's profile.
type UserProfile struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
	Phone string `json:"phone,omitempty"`
}

// PatientSummary is the slice of patient data embedded in an
// appointment as seen from the doctor's side.
type PatientSummary struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	DOB   string `json:"dob,omitempty"`
}

// Appointment is one booked consultation slot.
type Appointment struct {
	ID        string         `json:"_id"`
	DocID     string         `json:"docId,omitempty"`
	UserData  PatientSummary `json:"userData"`
	DocData   Doctor         `json:"docData,omitempty"`
	SlotDate  string         `json:"slotDate"`
	SlotTime  string         `json:"slotTime"`
	Amount    float64        `json:"amount"`
	Cancelled bool           `json:"cancelled"`
	Completed bool           `json:"isCompleted"`
}

// DashboardData holds the aggregate figures the backend computes for a
// doctor. The client never derives these locally.
type DashboardData struct {
	Earnings           float64       `json:"earnings"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}

// maxLatestDisplay bounds how many of the latest appointments the
// dashboard view shows, regardless of how many the backend returns.
const maxLatestDisplay = 5

// LatestForDisplay returns the latest appointments truncated for
// rendering.
func (d DashboardData) LatestForDisplay() []Appointment {
	if len(d.LatestAppointments) <= maxLatestDisplay {
		return d.LatestAppointments
	}
	return d.LatestAppointments[:maxLatestDisplay]
}

// ChatMessage is one turn of the chat-assist conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// DoctorJoinRequest is the multipart payload for registering a new
// doctor through the admin endpoint.
type DoctorJoinRequest struct {
	Name       string
	Email      string
	Password   string
	Speciality string
	Degree     string
	Experience string
	About      string
	Fees       string
	Address    Address
	ImageName  string
	Image      []byte
}
