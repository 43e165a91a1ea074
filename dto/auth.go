package dto

import "main/model"

type LoginRequest struct {
	DocumentNumber string `json:"document_number" binding:"required"`
}

type UserResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	CompanyID      string `json:"company_id,omitempty"`
	PhotoRef       string `json:"photo_ref,omitempty"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:             user.UserID,
		FullName:       user.FullName,
		Email:          user.Email,
		Role:           user.Role,
		DocumentType:   user.DocumentType,
		DocumentNumber: user.DocumentNumber,
		CompanyID:      user.CompanyID,
		PhotoRef:       user.PhotoRef,
	}
}
