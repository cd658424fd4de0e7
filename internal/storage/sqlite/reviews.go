package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/estatehub/estatehub/internal/models"
)

// CreateReview inserts a new review.
func (s *SQLiteStore) CreateReview(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt == 0 {
		review.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, property_id, buyer_email, review_text, rating, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		review.ID, review.PropertyID, review.BuyerEmail, review.ReviewText,
		review.Rating, review.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListReviewsByProperty retrieves all reviews for a property, newest first.
func (s *SQLiteStore) ListReviewsByProperty(ctx context.Context, propertyID string) ([]*models.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, property_id, buyer_email, review_text, rating, created_at
		 FROM reviews WHERE property_id = ? ORDER BY created_at DESC`,
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		review := &models.Review{}
		if err := rows.Scan(&review.ID, &review.PropertyID, &review.BuyerEmail,
			&review.ReviewText, &review.Rating, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}
