package model

import "time"

// JournalPost is a blog article (journal_posts).
type JournalPost struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content,omitempty"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"image_url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Slug        string     `json:"slug"`
	Author      string     `json:"author"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Experience is a curated activity offered to guests (experiences).
type Experience struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	CTALabel    string    `json:"cta_label"`
	CreatedAt   time.Time `json:"created_at"`
}

// Review is a guest testimonial (reviews).
type Review struct {
	ID         string `json:"id"`
	GuestName  string `json:"guest_name"`
	Quote      string `json:"quote"`
	Source     string `json:"source"`
	ImageURL   string `json:"image_url"`
	IsFeatured bool   `json:"is_featured"`
}

// Subscriber is a newsletter sign-up (subscribers).
type Subscriber struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
