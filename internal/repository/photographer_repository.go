package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

const photographerColumns = `id, name, location, price, rating, styles, tags, bio, profile_pic, reviews, portfolio`

// PhotographerRepository reads the photographer record set from Postgres.
type PhotographerRepository struct {
	db *sqlx.DB
}

// NewPhotographerRepository constructs a PhotographerRepository.
func NewPhotographerRepository(db *sqlx.DB) *PhotographerRepository {
	return &PhotographerRepository{db: db}
}

type photographerRow struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	Location   string         `db:"location"`
	Price      float64        `db:"price"`
	Rating     float64        `db:"rating"`
	Styles     pq.StringArray `db:"styles"`
	Tags       pq.StringArray `db:"tags"`
	Bio        string         `db:"bio"`
	ProfilePic string         `db:"profile_pic"`
	Reviews    []byte         `db:"reviews"`
	Portfolio  pq.StringArray `db:"portfolio"`
}

func (r photographerRow) toModel() (models.Photographer, error) {
	reviews := []models.Review{}
	if len(r.Reviews) > 0 {
		if err := json.Unmarshal(r.Reviews, &reviews); err != nil {
			return models.Photographer{}, fmt.Errorf("decode reviews for photographer %d: %w", r.ID, err)
		}
	}
	return models.Photographer{
		ID:         r.ID,
		Name:       r.Name,
		Location:   r.Location,
		Price:      r.Price,
		Rating:     r.Rating,
		Styles:     nonNil(r.Styles),
		Tags:       nonNil(r.Tags),
		Bio:        r.Bio,
		ProfilePic: r.ProfilePic,
		Reviews:    reviews,
		Portfolio:  nonNil(r.Portfolio),
	}, nil
}

// List returns every photographer in insertion order.
func (r *PhotographerRepository) List(ctx context.Context) ([]models.Photographer, error) {
	query := "SELECT " + photographerColumns + " FROM photographers ORDER BY id ASC"
	var rows []photographerRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list photographers: %w", err)
	}
	out := make([]models.Photographer, 0, len(rows))
	for _, row := range rows {
		record, err := row.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

// Get fetches one photographer by id.
func (r *PhotographerRepository) Get(ctx context.Context, id int64) (*models.Photographer, error) {
	query := "SELECT " + photographerColumns + " FROM photographers WHERE id = $1"
	var row photographerRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "photographer "+strconv.FormatInt(id, 10)+" not found")
		}
		return nil, fmt.Errorf("get photographer %d: %w", id, err)
	}
	record, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func nonNil(values pq.StringArray) []string {
	if values == nil {
		return []string{}
	}
	return []string(values)
}
