package model

import "time"

// Brand represents a racket manufacturer. Rackets reference a brand by
// foreign key; the slug is the URL-safe identifier used by the public
// brand pages.
type Brand struct {
	ID          uint64    `json:"id"`                    // brands.id
	Name        string    `json:"name"`                  // brands.name
	Slug        string    `json:"slug"`                  // brands.slug (unique)
	LogoURL     *string   `json:"logo_url"`              // brands.logo_url (nullable)
	Description *string   `json:"description,omitempty"` // brands.description (nullable)
	WebsiteURL  *string   `json:"website_url,omitempty"` // brands.website_url (nullable)
	CreatedAt   time.Time `json:"created_at"`            // brands.created_at
}
