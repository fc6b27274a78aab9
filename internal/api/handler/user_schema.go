package handler

// updateUserRequest is a partial self-service profile update; omitted
// fields keep their current value.
type updateUserRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=3,max=20"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// adminUpdateUserRequest additionally allows a role change.
type adminUpdateUserRequest struct {
	Name     string `json:"name"     validate:"omitempty,min=3,max=20"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

// updateSelfResponse reports the saved profile and whether the session
// cookie was refreshed along with it.
type updateSelfResponse struct {
	User             userResponse `json:"user"`
	SessionRefreshed bool         `json:"session_refreshed"`
}
