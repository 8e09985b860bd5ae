// Package inference owns the loaded model and runs one blocking
// prediction per request.
package inference

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"croprec/crop"
	"croprec/db"
	"croprec/ml"
	"croprec/monitoring"
)

// Recommendation is the outcome of one inference call.
type Recommendation struct {
	Crop       string  `json:"crop"`
	Display    string  `json:"display"`
	Confidence float64 `json:"confidence"`
}

// Service wires the classifier to the history store, the result cache and
// the live feed. The model reference is swapped atomically on reload and
// never mutated.
type Service struct {
	mu     sync.RWMutex
	model  ml.Classifier
	cache  *lru.Cache[string, Recommendation]
	store  *db.Store
	hub    *monitoring.Hub
	logger *zap.Logger
}

// NewService builds a service around a loaded model. store and hub may be
// nil; history and the live feed are then skipped.
func NewService(model ml.Classifier, store *db.Store, hub *monitoring.Hub, cacheSize int, logger *zap.Logger) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}
	cache, err := lru.New[string, Recommendation](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Service{
		model:  model,
		cache:  cache,
		store:  store,
		hub:    hub,
		logger: logger,
	}, nil
}

// Recommend runs the classifier on a validated feature vector. The cache
// only short-circuits the model call: every successful request is recorded
// and broadcast. History and feed failures are logged but never fail the
// request.
func (s *Service) Recommend(ctx context.Context, vec crop.FeatureVector) (Recommendation, error) {
	key := cacheKey(vec)
	rec, ok := s.cache.Get(key)
	if !ok {
		s.mu.RLock()
		model := s.model
		s.mu.RUnlock()

		label, confidence, err := model.Predict(vec[:])
		if err != nil {
			return Recommendation{}, fmt.Errorf("prediction failed: %w", err)
		}

		rec = Recommendation{
			Crop:       label,
			Display:    cases.Title(language.English).String(label),
			Confidence: confidence,
		}
		s.cache.Add(key, rec)
	}

	if s.store != nil {
		if err := s.store.SavePrediction(ctx, vec, rec.Crop, rec.Confidence); err != nil {
			s.logger.Warn("save prediction", zap.Error(err))
		}
	}
	if s.hub != nil {
		inputs := make(map[string]float64, len(crop.Fields))
		for i, f := range crop.Fields {
			inputs[f.Key] = vec[i]
		}
		s.hub.Broadcast("prediction", monitoring.PredictionEvent{
			Crop:       rec.Crop,
			Confidence: rec.Confidence,
			Inputs:     inputs,
		})
	}
	return rec, nil
}

// Reload swaps in a new model and drops results cached under the old one.
func (s *Service) Reload(model ml.Classifier) {
	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
	s.cache.Purge()
}

// Classes returns the labels of the current model.
func (s *Service) Classes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Classes()
}

func cacheKey(vec crop.FeatureVector) string {
	var b strings.Builder
	for i, v := range vec {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}
