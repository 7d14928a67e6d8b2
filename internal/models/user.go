package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account stored in the users collection.
type User struct {
	ID             primitive.ObjectID `json:"_id"            bson:"_id,omitempty"`
	Username       string             `json:"username"       bson:"username"`
	Email          string             `json:"email"          bson:"email"`
	Password       string             `json:"-"              bson:"password"` // bcrypt hash, never serialized
	Portfolio      string             `json:"portfolio"      bson:"portfolio"`
	ProfilePicture string             `json:"profilePicture" bson:"profilePicture"`
}

// RegisterRequest is the JSON body for POST /register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password"        validate:"required"`
}

// LoginResponse is returned by a successful POST /login.
type LoginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Portfolio string `json:"portfolio"`
}

// Profile is the body of GET /profile.
type Profile struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Portfolio      string `json:"portfolio"`
	ProfilePicture string `json:"profilePicture"`
	BlogsCount     int64  `json:"blogsCount"`
}

// ProfileUpdateRequest is the JSON body for PUT /profile.
type ProfileUpdateRequest struct {
	Username  string `json:"username"`
	Portfolio string `json:"portfolio"`
}
