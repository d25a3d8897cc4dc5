package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shelfmarkapp/shelfmark-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's account information",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAccount",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/me",
		Summary:     "Update account",
		Description: "Updates the authenticated user's name and/or email",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateAccount)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateProfileImage",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/me/profile-image",
		Summary:     "Update profile image",
		Description: "Sets the authenticated user's profile image URL",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateProfileImage)
}

// UserOutput wraps a user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// UpdateAccountRequest is the request body for account updates.
// Omitted fields are left untouched.
type UpdateAccountRequest struct {
	Name            string `json:"name,omitempty" validate:"omitempty,max=100" doc:"New display name"`
	Email           string `json:"email,omitempty" validate:"omitempty,email,max=254" doc:"New email address"`
	CurrentPassword string `json:"current_password,omitempty" validate:"omitempty,max=1024" doc:"Current password, required when changing the password"`
	NewPassword     string `json:"new_password,omitempty" validate:"omitempty,min=8,max=1024" doc:"New password"`
}

// UpdateAccountInput wraps the update request for Huma.
type UpdateAccountInput struct {
	Body UpdateAccountRequest
}

// UpdateProfileImageRequest is the request body for profile image updates.
type UpdateProfileImageRequest struct {
	ProfileImage string `json:"profile_image" validate:"required,max=2048" doc:"Profile image URL"`
}

// UpdateProfileImageInput wraps the profile image request for Huma.
type UpdateProfileImageInput struct {
	Body UpdateProfileImageRequest
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleUpdateAccount(ctx context.Context, input *UpdateAccountInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.UpdateAccount(ctx, userID, service.UpdateAccountRequest{
		Name:            input.Body.Name,
		Email:           input.Body.Email,
		CurrentPassword: input.Body.CurrentPassword,
		NewPassword:     input.Body.NewPassword,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}

func (s *Server) handleUpdateProfileImage(ctx context.Context, input *UpdateProfileImageInput) (*UserOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.UpdateProfileImage(ctx, userID, input.Body.ProfileImage)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: mapUserResponse(user)}, nil
}
