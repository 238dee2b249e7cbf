package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username         string             `json:"username" bson:"username"`
	Email            string             `json:"email" bson:"email"`
	TeamCode         string             `json:"teamCode,omitempty" bson:"teamCode,omitempty"`
	LeetcodeUsername string             `json:"leetcode_username,omitempty" bson:"leetcode_username,omitempty"`
	PasswordHash     string             `json:"-" bson:"password"`
}

// TeamMember is the public projection of a user returned in team member lists.
type TeamMember struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) ToMember() TeamMember {
	return TeamMember{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
	}
}
