package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/bali-villa-booking/internal/model"
)

// ContentRepo reads the editorial tables: journal posts, experiences and
// reviews.
type ContentRepo struct{ db *sql.DB }

// NewContentRepo returns a ContentRepo bound to db.
func NewContentRepo(db *sql.DB) *ContentRepo { return &ContentRepo{db: db} }

const journalListColumns = `id, title, COALESCE(excerpt,''), COALESCE(category,''), COALESCE(image_url,''),
	published_at, slug, COALESCE(author,''), created_at`

func scanJournal(s rowScanner, withContent bool) (model.JournalPost, error) {
	var (
		p         model.JournalPost
		published sql.NullTime
		content   sql.NullString
	)
	dest := []any{&p.ID, &p.Title, &p.Excerpt, &p.Category, &p.ImageURL, &published, &p.Slug, &p.Author, &p.CreatedAt}
	if withContent {
		dest = append(dest, &content)
	}
	if err := s.Scan(dest...); err != nil {
		return p, err
	}
	if published.Valid {
		t := published.Time
		p.PublishedAt = &t
	}
	p.Content = content.String
	return p, nil
}

// ListJournal returns posts newest first without their body.  limit <= 0
// means no limit.
func (r *ContentRepo) ListJournal(ctx context.Context, limit int) ([]model.JournalPost, error) {
	q := `SELECT ` + journalListColumns + ` FROM journal_posts ORDER BY COALESCE(published_at, created_at) DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.JournalPost{}
	for rows.Next() {
		p, err := scanJournal(rows, false)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// JournalBySlug returns the full post or ErrNotFound.
func (r *ContentRepo) JournalBySlug(ctx context.Context, slug string) (model.JournalPost, error) {
	p, err := scanJournal(r.db.QueryRowContext(ctx,
		`SELECT `+journalListColumns+`, content FROM journal_posts WHERE slug = ? LIMIT 1`, slug), true)
	if errors.Is(err, sql.ErrNoRows) {
		return model.JournalPost{}, ErrNotFound
	}
	return p, err
}

// ListExperiences returns every experience ordered by creation time.
func (r *ContentRepo) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, COALESCE(description,''), COALESCE(category,''),
		COALESCE(image_url,''), COALESCE(cta_label,''), created_at FROM experiences ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Experience{}
	for rows.Next() {
		var e model.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.ImageURL, &e.CTALabel, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListFeaturedReviews returns reviews flagged for the home page.
func (r *ContentRepo) ListFeaturedReviews(ctx context.Context) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, guest_name, quote, COALESCE(source,''), COALESCE(image_url,''), is_featured
		FROM reviews WHERE is_featured = 1 ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Review{}
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.GuestName, &rv.Quote, &rv.Source, &rv.ImageURL, &rv.IsFeatured); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
