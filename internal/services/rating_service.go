package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"rately/internal/models"
	"rately/internal/repositories"
)

// EventPublisher publishes domain events to the message broker. Satisfied by
// *rabbitmq.Client; a nil publisher disables event publication.
type EventPublisher interface {
	Publish(eventType string, body []byte) error
}

// RatingService owns the rating-submission workflow: the (user, store)
// upsert, the synchronous recomputation of the store's cached aggregate, and
// event publication.
type RatingService struct {
	ratingRepo repositories.RatingRepository
	storeRepo  repositories.StoreRepository
	publisher  EventPublisher
}

// NewRatingService creates a new RatingService.
func NewRatingService(ratingRepo repositories.RatingRepository, storeRepo repositories.StoreRepository, publisher EventPublisher) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
		publisher:  publisher,
	}
}

// Submit records a user's rating of a store. A first rating creates a ledger
// record; a repeat rating overwrites the existing record's value. Either
// path then recomputes the store's cached aggregate.
func (s *RatingService) Submit(userID, storeID string, value int) error {
	if _, err := s.storeRepo.GetByID(storeID); err != nil {
		return err
	}

	existing, err := s.ratingRepo.GetByUserAndStore(userID, storeID)
	switch {
	case err == nil:
		existing.Value = value
		if err := s.ratingRepo.Update(existing); err != nil {
			return fmt.Errorf("failed to update rating: %w", err)
		}
	case errors.Is(err, repositories.ErrNotFound):
		rating := &models.Rating{UserID: userID, StoreID: storeID, Value: value}
		if createErr := s.ratingRepo.Create(rating); createErr != nil {
			// A concurrent first rating for the same pair may have won the
			// unique (user, store) index; retry as an update.
			current, getErr := s.ratingRepo.GetByUserAndStore(userID, storeID)
			if getErr != nil {
				return createErr
			}
			current.Value = value
			if err := s.ratingRepo.Update(current); err != nil {
				return fmt.Errorf("failed to update rating: %w", err)
			}
		}
	default:
		return err
	}

	s.RefreshStoreStats(storeID)
	s.publishSubmitted(userID, storeID, value)
	return nil
}

// RefreshStoreStats recomputes the store's cached average and count from the
// rating ledger. The full recompute (rather than a delta) keeps the cached
// fields from drifting under partial or out-of-order updates. The rating
// write has already succeeded when this runs, so failures are logged and the
// cache stays stale until the next successful write for the store.
func (s *RatingService) RefreshStoreStats(storeID string) {
	average, total, err := s.ratingRepo.AggregateForStore(storeID)
	if err != nil {
		log.Printf("Failed to aggregate ratings for store %s: %v", storeID, err)
		return
	}
	average = math.Round(average*10) / 10

	if err := s.storeRepo.UpdateRatingStats(storeID, average, total); err != nil {
		log.Printf("Failed to update rating stats for store %s: %v", storeID, err)
	}
}

// publishSubmitted emits a rating.submitted event. Publication is a side
// channel: failures are logged and never fail the submission.
func (s *RatingService) publishSubmitted(userID, storeID string, value int) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"userId":  userID,
		"storeId": storeID,
		"rating":  value,
	})
	if err != nil {
		log.Printf("Failed to marshal rating event: %v", err)
		return
	}
	if err := s.publisher.Publish("rating.submitted", body); err != nil {
		log.Printf("Warning: failed to publish rating event for store %s: %v", storeID, err)
	}
}
