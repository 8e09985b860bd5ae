package db

import (
	"context"
	"database/sql"
	"time"

	"croprec/crop"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists prediction history in SQLite.
type Store struct {
	db *sql.DB
}

// PredictionRecord is one stored recommendation with its inputs.
type PredictionRecord struct {
	ID          int64     `json:"id"`
	Nitrogen    float64   `json:"nitrogen"`
	Phosphorus  float64   `json:"phosphorus"`
	Potassium   float64   `json:"potassium"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	PH          float64   `json:"ph"`
	Rainfall    float64   `json:"rainfall"`
	Crop        string    `json:"crop"`
	Confidence  float64   `json:"confidence"`
	CreatedAt   time.Time `json:"created_at"`
}

// Open opens (creating if needed) the prediction store at path.
func Open(path string) (*Store, error) {
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	query := `
    CREATE TABLE IF NOT EXISTS predictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        nitrogen REAL NOT NULL,
        phosphorus REAL NOT NULL,
        potassium REAL NOT NULL,
        temperature REAL NOT NULL,
        humidity REAL NOT NULL,
        ph REAL NOT NULL,
        rainfall REAL NOT NULL,
        crop TEXT NOT NULL,
        confidence REAL NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	if _, err := database.Exec(query); err != nil {
		database.Close()
		return nil, err
	}

	return &Store{db: database}, nil
}

// SavePrediction appends one recommendation to the history.
func (s *Store) SavePrediction(ctx context.Context, vec crop.FeatureVector, label string, confidence float64) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO predictions (nitrogen, phosphorus, potassium, temperature, humidity, ph, rainfall, crop, confidence)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		vec[0], vec[1], vec[2], vec[3], vec[4], vec[5], vec[6], label, confidence)
	return err
}

// RecentPredictions returns up to limit records, newest first.
func (s *Store) RecentPredictions(ctx context.Context, limit int) ([]PredictionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, nitrogen, phosphorus, potassium, temperature, humidity, ph, rainfall, crop, confidence, created_at
        FROM predictions
        ORDER BY id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PredictionRecord
	for rows.Next() {
		var r PredictionRecord
		err := rows.Scan(&r.ID, &r.Nitrogen, &r.Phosphorus, &r.Potassium, &r.Temperature,
			&r.Humidity, &r.PH, &r.Rainfall, &r.Crop, &r.Confidence, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
