package model

import "time"

// UserProfile mirrors the 'user_profiles' table, a 1:1 extension of the auth
// user carrying the public-facing display fields.
type UserProfile struct {
	UserID          uint64    `json:"user_id"`           // user_profiles.user_id
	Username        *string   `json:"username"`          // user_profiles.username (nullable, 2..50)
	DisplayName     *string   `json:"display_name"`      // user_profiles.display_name (nullable, <=100)
	Bio             *string   `json:"bio"`               // user_profiles.bio (nullable, <=500)
	PlayLevel       *string   `json:"play_level"`        // user_profiles.play_level (nullable)
	FavoriteBrandID *uint64   `json:"favorite_brand_id"` // user_profiles.favorite_brand_id (nullable)
	AvatarURL       *string   `json:"avatar_url"`        // user_profiles.avatar_url (nullable)
	CreatedAt       time.Time `json:"created_at"`        // user_profiles.created_at
	UpdatedAt       time.Time `json:"updated_at"`        // user_profiles.updated_at
}

// AuthorProfile is the slice of a profile attached to comments and reviews.
// A missing profile renders as the anonymous author instead of failing the
// page, so every field tolerates emptiness.
type AuthorProfile struct {
	UserID      uint64  `json:"user_id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// AnonymousAuthor is rendered whenever an author profile cannot be loaded
// (deleted account or failed lookup).
func AnonymousAuthor(userID uint64) AuthorProfile {
	return AuthorProfile{UserID: userID, Username: "anonymous", DisplayName: "Anonymous"}
}
