package dto

import "time"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type TableLinkResponse struct {
	Table    int    `json:"table"`
	URL      string `json:"url"`
	MenuPath string `json:"menuPath"`
}
