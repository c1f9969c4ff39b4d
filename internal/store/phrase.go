package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Phrase is a user-saved sentence available for one-tap speech output.
type Phrase struct {
	ID        string
	Text      string
	Uses      int
	CreatedAt time.Time
}

// PhraseRepository provides CRUD operations for saved phrases.
type PhraseRepository struct {
	db *sql.DB
}

// Phrases returns the phrase repository for this store.
func (s *Store) Phrases() *PhraseRepository {
	return &PhraseRepository{db: s.db}
}

// Create saves a new phrase and assigns it an ID.
func (r *PhraseRepository) Create(p *Phrase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO phrases (id, text, uses, created_at) VALUES (?, ?, ?, ?)`,
		p.ID, p.Text, p.Uses, p.CreatedAt,
	)
	return err
}

// GetByID retrieves a phrase by its ID.
func (r *PhraseRepository) GetByID(id string) (*Phrase, error) {
	p := &Phrase{}
	err := r.db.QueryRow(
		`SELECT id, text, uses, created_at FROM phrases WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Text, &p.Uses, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns all phrases, most used first.
func (r *PhraseRepository) List() ([]*Phrase, error) {
	rows, err := r.db.Query(
		`SELECT id, text, uses, created_at FROM phrases ORDER BY uses DESC, created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phrases []*Phrase
	for rows.Next() {
		p := &Phrase{}
		if err := rows.Scan(&p.ID, &p.Text, &p.Uses, &p.CreatedAt); err != nil {
			return nil, err
		}
		phrases = append(phrases, p)
	}
	return phrases, rows.Err()
}

// Touch increments a phrase's use counter.
func (r *PhraseRepository) Touch(id string) error {
	res, err := r.db.Exec(`UPDATE phrases SET uses = uses + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a phrase.
func (r *PhraseRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM phrases WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
