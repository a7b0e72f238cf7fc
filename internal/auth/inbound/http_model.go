package inbound

import "time"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	ChallengeToken string    `json:"challenge_token"`
	Secret         string    `json:"secret"`
	URI            string    `json:"uri"`
	QRCode         string    `json:"qr_code"`
	ExpiresAt      time.Time `json:"expires_at"`
}

func (RegisterResponse) Message() string {
	return "Registration successful. Scan the QR code and verify with a code to finish enrollment."
}

type RegisterVerifyRequest struct {
	ChallengeToken string `json:"challenge_token"`
	Code           string `json:"code"`
}

type RegisterVerifyResponse struct {
	AccessToken string `json:"access_token"`
}

func (RegisterVerifyResponse) Message() string {
	return "Enrollment verified."
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Signed out."
}

type SessionResponse struct {
	UserID    uint64    `json:"user_id,string"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
