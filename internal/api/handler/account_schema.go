package handler

import "github.com/PierreClouet/WorkEat/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// validationResponse is returned on 400 when request fields fail validation.
type validationResponse struct {
	Errors []string `json:"errors"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// accountRequest is shared by Create and Update: both take the full field
// set, and both require every field (Update is a full replace).
type accountRequest struct {
	Username    string `json:"username"    validate:"required,email"`
	Password    string `json:"password"    validate:"required"`
	Name        string `json:"name"        validate:"required"`
	Surname     string `json:"surname"     validate:"required"`
	PostalCode  string `json:"postalCode"  validate:"required,number"`
	Town        string `json:"town"        validate:"required"`
	Address     string `json:"address"     validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type deleteRequest struct {
	Username string `json:"username" validate:"required"`
}

// --- Response types ---

// profileResponse is the projection returned on login. It deliberately
// excludes the account id and the password hash.
type profileResponse struct {
	Username      string `json:"username"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	PostalCode    string `json:"postalCode"`
	Address       string `json:"address"`
	PhoneNumber   string `json:"phoneNumber"`
	Town          string `json:"town"`
	IsAdmin       bool   `json:"isAdmin"`
	IsLivreur     bool   `json:"isLivreur"`
	IsPrestataire bool   `json:"isPrestataire"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  profileResponse `json:"user"`
}

type updateResponse struct {
	User   *domain.Account `json:"user"`
	Status string          `json:"status"`
}
