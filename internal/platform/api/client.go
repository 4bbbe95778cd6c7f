// Package api is the REST client for the appointment platform backend.
// Every call is a single request/response exchange: no retries, no
// caching. Failures are reported as either transport errors (wrapped)
// or *BackendError for well-formed responses with success=false.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Backend routes.
const (
	routeDoctorList          = "/api/doctor/list"
	routeUserProfile         = "/api/user/get-profile"
	routeUserRegister        = "/api/user/register"
	routeUserLogin           = "/api/user/login"
	routeDoctorLogin         = "/api/doctor/login"
	routeAdminAddDoctor      = "/api/admin/add-doctor"
	routeDoctorProfile       = "/api/doctor/profile"
	routeDoctorAppointments  = "/api/doctor/appointments"
	routeDoctorDashboard     = "/api/doctor/dashboard"
	routeCancelAppointment   = "/api/doctor/cancel-appointment"
	routeCompleteAppointment = "/api/doctor/complete-appointment"
)

// Client talks to the backend REST API and the chat-assist endpoint.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	chatURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a Client. baseURL is the backend host, chatURL the
// full chat-assist endpoint. The timeout applies per request.
func NewClient(baseURL, chatURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		chatURL: chatURL,
		http:    &http.Client{Timeout: timeout},
		log:     logger.With().Str("component", "api").Logger(),
	}
}

// envelope is the response wrapper every backend endpoint uses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// authHeader names the three authentication schemes the backend uses.
type authHeader struct {
	key   string
	value string
}

func patientAuth(token string) *authHeader { return &authHeader{key: "token", value: token} }
func adminAuth(token string) *authHeader   { return &authHeader{key: "aToken", value: token} }
func doctorAuth(token string) *authHeader {
	return &authHeader{key: "Authorization", value: "Bearer " + token}
}

// ---------------------------------------------------------------------------
// Directory and patient operations
// ---------------------------------------------------------------------------

// ListDoctors fetches the full doctor directory. No authentication.
func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	var out struct {
		envelope
		Doctors []Doctor `json:"doctors"`
	}
	if err := c.get(ctx, "list doctors", routeDoctorList, nil, &out); err != nil {
		return nil, err
	}
	return out.Doctors, nil
}

// GetUserProfile fetches the authenticated patient's profile.
func (c *Client) GetUserProfile(ctx context.Context, token string) (*UserProfile, error) {
	var out struct {
		envelope
		UserData *UserProfile `json:"userData"`
	}
	if err := c.get(ctx, "get user profile", routeUserProfile, patientAuth(token), &out); err != nil {
		return nil, err
	}
	return out.UserData, nil
}

// RegisterUser creates a patient account and returns the issued token.
func (c *Client) RegisterUser(ctx context.Context, name, email, password string) (string, error) {
	return c.tokenPost(ctx, "register user", routeUserRegister, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// LoginUser authenticates a patient and returns the issued token.
func (c *Client) LoginUser(ctx context.Context, email, password string) (string, error) {
	return c.tokenPost(ctx, "login user", routeUserLogin, map[string]string{
		"email":    email,
		"password": password,
	})
}

// LoginDoctor authenticates a doctor and returns the issued token.
func (c *Client) LoginDoctor(ctx context.Context, email, password string) (string, error) {
	return c.tokenPost(ctx, "login doctor", routeDoctorLogin, map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) tokenPost(ctx context.Context, op, route string, body map[string]string) (string, error) {
	var out struct {
		envelope
		Token string `json:"token"`
	}
	if err := c.post(ctx, op, route, nil, body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// AddDoctor registers a new doctor record, image included, through the
// admin endpoint. The request is multipart/form-data.
func (c *Client) AddDoctor(ctx context.Context, adminToken string, join DoctorJoinRequest) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{
		"name":       join.Name,
		"email":      join.Email,
		"password":   join.Password,
		"speciality": join.Speciality,
		"degree":     join.Degree,
		"experience": join.Experience,
		"about":      join.About,
		"fees":       join.Fees,
	}
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("add doctor: write field %s: %w", key, err)
		}
	}
	address, err := json.Marshal(join.Address)
	if err != nil {
		return fmt.Errorf("add doctor: encode address: %w", err)
	}
	if err := w.WriteField("address", string(address)); err != nil {
		return fmt.Errorf("add doctor: write address: %w", err)
	}

	part, err := w.CreateFormFile("image", join.ImageName)
	if err != nil {
		return fmt.Errorf("add doctor: create image part: %w", err)
	}
	if _, err := part.Write(join.Image); err != nil {
		return fmt.Errorf("add doctor: write image: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("add doctor: finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+routeAdminAddDoctor, &body)
	if err != nil {
		return fmt.Errorf("add doctor: create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("aToken", adminToken)

	var out envelope
	return c.do(req, "add doctor", &out, &out)
}

// ---------------------------------------------------------------------------
// Doctor-session operations
// ---------------------------------------------------------------------------

// GetDoctorProfile fetches the authenticated doctor's own profile.
func (c *Client) GetDoctorProfile(ctx context.Context, token string) (*Doctor, error) {
	var out struct {
		envelope
		ProfileData *Doctor `json:"profileData"`
	}
	if err := c.get(ctx, "get doctor profile", routeDoctorProfile, doctorAuth(token), &out); err != nil {
		return nil, err
	}
	return out.ProfileData, nil
}

// GetDoctorAppointments fetches the doctor's appointments in the
// server's delivery order. Callers decide presentation order.
func (c *Client) GetDoctorAppointments(ctx context.Context, token string) ([]Appointment, error) {
	var out struct {
		envelope
		Appointments []Appointment `json:"appointments"`
	}
	if err := c.get(ctx, "get doctor appointments", routeDoctorAppointments, doctorAuth(token), &out); err != nil {
		return nil, err
	}
	return out.Appointments, nil
}

// GetDoctorDashboard fetches the backend-computed aggregate figures.
func (c *Client) GetDoctorDashboard(ctx context.Context, token string) (*DashboardData, error) {
	var out struct {
		envelope
		DashData *DashboardData `json:"dashData"`
	}
	if err := c.get(ctx, "get doctor dashboard", routeDoctorDashboard, doctorAuth(token), &out); err != nil {
		return nil, err
	}
	return out.DashData, nil
}

// CancelAppointment posts a cancellation for the given appointment id
// and returns the backend's confirmation message.
func (c *Client) CancelAppointment(ctx context.Context, token, appointmentID string) (string, error) {
	return c.appointmentPost(ctx, "cancel appointment", routeCancelAppointment, token, appointmentID)
}

// CompleteAppointment marks the given appointment completed and returns
// the backend's confirmation message.
func (c *Client) CompleteAppointment(ctx context.Context, token, appointmentID string) (string, error) {
	return c.appointmentPost(ctx, "complete appointment", routeCompleteAppointment, token, appointmentID)
}

func (c *Client) appointmentPost(ctx context.Context, op, route, token, appointmentID string) (string, error) {
	var out envelope
	err := c.post(ctx, op, route, doctorAuth(token), map[string]string{
		"appointmentId": appointmentID,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// ---------------------------------------------------------------------------
// Chat assist
// ---------------------------------------------------------------------------

// Chat posts the given messages to the chat-assist endpoint and returns
// the assistant's reply. The chat endpoint has no success envelope; it
// answers with a single message body.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage) (ChatMessage, error) {
	raw, err := json.Marshal(map[string][]ChatMessage{"messages": messages})
	if err != nil {
		return ChatMessage{}, fmt.Errorf("chat: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(raw))
	if err != nil {
		return ChatMessage{}, fmt.Errorf("chat: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("chat: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ChatMessage{}, fmt.Errorf("chat: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ChatMessage{}, &BackendError{Op: "chat", Status: resp.StatusCode}
	}

	var reply struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &reply); err != nil {
		return ChatMessage{}, fmt.Errorf("chat: decode response: %w", err)
	}
	if reply.Role == "" {
		reply.Role = RoleAssistant
	}
	return ChatMessage{Role: reply.Role, Content: reply.Content}, nil
}

// ---------------------------------------------------------------------------
// Request plumbing
// ---------------------------------------------------------------------------

func (c *Client) get(ctx context.Context, op, route string, auth *authHeader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+route, nil)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	if auth != nil {
		req.Header.Set(auth.key, auth.value)
	}
	env := envelopeOf(out)
	return c.do(req, op, out, env)
}

func (c *Client) post(ctx context.Context, op, route string, auth *authHeader, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+route, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth != nil {
		req.Header.Set(auth.key, auth.value)
	}
	env := envelopeOf(out)
	return c.do(req, op, out, env)
}

// do sends req, decodes the body into out and enforces the success
// envelope. env must point at the envelope embedded in out.
func (c *Client) do(req *http.Request, op string, out interface{}, env *envelope) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Str("url", req.URL.String()).Msg("request failed")
		return fmt.Errorf("%s: send request: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response (status %d): %w", op, resp.StatusCode, err)
	}

	c.log.Debug().
		Str("op", op).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("request")

	if !env.Success {
		return &BackendError{Op: op, Status: resp.StatusCode, Message: env.Message}
	}
	return nil
}

// envelopeOf extracts the embedded envelope from a response struct.
// Response structs embed envelope as their first field.
func envelopeOf(out interface{}) *envelope {
	type enveloped interface{ env() *envelope }
	if e, ok := out.(enveloped); ok {
		return e.env()
	}
	if e, ok := out.(*envelope); ok {
		return e
	}
	panic(fmt.Sprintf("api: response type %T does not embed envelope", out))
}

func (e *envelope) env() *envelope { return e }
