// internal/history/store.go

// Package history persists generated workout plans per user in
// Elasticsearch, with a Redis cache in front of the most recent plan.
package history

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	apperrors "fitcoach-backend/internal/common/errors"
	"fitcoach-backend/internal/common/logger"
	"fitcoach-backend/internal/common/metrics"
	"fitcoach-backend/internal/models"
)

const defaultListSize = 20

type Store struct {
	client *elasticsearch.Client
	index  string
	cache  *Cache
	logger logger.Logger
}

// NewStore builds a history store. cache may be nil to disable caching.
func NewStore(client *elasticsearch.Client, index string, cache *Cache, log logger.Logger) *Store {
	return &Store{
		client: client,
		index:  index,
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"component": "history-store"}),
	}
}

// Save indexes a history entry. A missing ID or timestamp is filled in.
func (s *Store) Save(ctx context.Context, entry models.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(entry)
	if err != nil {
		return apperrors.NewHistorySaveFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: entry.ID,
		Body:       strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		metrics.HistoryOperations.WithLabelValues("save", "error").Inc()
		return apperrors.NewHistorySaveFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		metrics.HistoryOperations.WithLabelValues("save", "error").Inc()
		return apperrors.NewHistorySaveFailedError(responseError(res))
	}

	metrics.HistoryOperations.WithLabelValues("save", "ok").Inc()

	if s.cache != nil {
		if err := s.cache.SetRecent(ctx, entry.UserID, entry); err != nil {
			s.logger.WithError(err).Warn("failed to cache recent plan", map[string]interface{}{
				"userId": entry.UserID,
			})
		}
	}

	s.logger.Info("history entry saved", map[string]interface{}{
		"userId":  entry.UserID,
		"entryId": entry.ID,
	})
	return nil
}

// List returns a user's history, newest first.
func (s *Store) List(ctx context.Context, userID string) ([]models.HistoryEntry, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"user_id.keyword": userID,
			},
		},
		"sort": []map[string]interface{}{
			{"timestamp": map[string]interface{}{"order": "desc"}},
		},
	}
	body, _ := json.Marshal(query)

	size := defaultListSize
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		metrics.HistoryOperations.WithLabelValues("list", "error").Inc()
		return nil, apperrors.NewHistoryQueryFailedError(userID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		// A user with no history yet may hit a not-yet-created index.
		if res.StatusCode == http.StatusNotFound {
			metrics.HistoryOperations.WithLabelValues("list", "ok").Inc()
			return nil, nil
		}
		metrics.HistoryOperations.WithLabelValues("list", "error").Inc()
		return nil, apperrors.NewHistoryQueryFailedError(userID, responseError(res))
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.HistoryEntry `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		metrics.HistoryOperations.WithLabelValues("list", "error").Inc()
		return nil, apperrors.NewHistoryQueryFailedError(userID, err)
	}

	entries := make([]models.HistoryEntry, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		entries = append(entries, hit.Source)
	}

	metrics.HistoryOperations.WithLabelValues("list", "ok").Inc()
	return entries, nil
}

// Recent returns the user's latest entry, served from cache when possible.
func (s *Store) Recent(ctx context.Context, userID string) (*models.HistoryEntry, error) {
	if s.cache != nil {
		if entry, ok := s.cache.GetRecent(ctx, userID); ok {
			return entry, nil
		}
	}

	entries, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// DeleteByUser removes all of a user's history and invalidates the cache.
// It returns the number of deleted entries.
func (s *Store) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"user_id.keyword": userID,
			},
		},
	}
	body, _ := json.Marshal(query)

	req := esapi.DeleteByQueryRequest{
		Index: []string{s.index},
		Body:  strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		metrics.HistoryOperations.WithLabelValues("delete", "error").Inc()
		return 0, apperrors.NewHistoryDeleteFailedError(userID, err)
	}
	defer res.Body.Close()

	var deleted int64
	if res.IsError() {
		if res.StatusCode != http.StatusNotFound {
			metrics.HistoryOperations.WithLabelValues("delete", "error").Inc()
			return 0, apperrors.NewHistoryDeleteFailedError(userID, responseError(res))
		}
	} else {
		var r struct {
			Deleted int64 `json:"deleted"`
		}
		if err := json.NewDecoder(res.Body).Decode(&r); err == nil {
			deleted = r.Deleted
		}
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.logger.WithError(err).Warn("failed to invalidate cached plan", map[string]interface{}{
				"userId": userID,
			})
		}
	}

	metrics.HistoryOperations.WithLabelValues("delete", "ok").Inc()
	s.logger.Info("history deleted", map[string]interface{}{
		"userId":  userID,
		"deleted": deleted,
	})
	return deleted, nil
}

func responseError(res *esapi.Response) error {
	return &statusError{status: res.Status()}
}

type statusError struct {
	status string
}

func (e *statusError) Error() string {
	return "elasticsearch: " + e.status
}
