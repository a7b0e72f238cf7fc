package inbound

import "time"

type AddTokenRequest struct {
	Service string `json:"service"`
}

type AddTokenResponse struct {
	ID        uint64    `json:"id,string"`
	Service   string    `json:"service"`
	Secret    string    `json:"secret"`
	URI       string    `json:"uri"`
	QRCode    string    `json:"qr_code"`
	CreatedAt time.Time `json:"created_at"`
}

func (AddTokenResponse) Message() string {
	return "Token stored. The secret is shown only once."
}

type TokenCodeResponse struct {
	ID               uint64    `json:"id,string"`
	Service          string    `json:"service"`
	Code             string    `json:"code"`
	SecondsRemaining int       `json:"seconds_remaining"`
	CreatedAt        time.Time `json:"created_at"`
}

type ListTokensResponse struct {
	Tokens []TokenCodeResponse `json:"tokens"`
}

type DeleteTokenResponse struct{}

func (DeleteTokenResponse) Message() string {
	return "Token deleted."
}

type ExportEntryResponse struct {
	Service string `json:"service"`
	Secret  string `json:"secret"`
}

type ExportResponse struct {
	Tokens []ExportEntryResponse `json:"tokens"`
}

type ImportEntryRequest struct {
	Service string `json:"service"`
	Secret  string `json:"secret"`
}

type ImportRequest struct {
	Tokens []ImportEntryRequest `json:"tokens"`
}

type ImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (ImportResponse) Message() string {
	return "Import finished."
}
