package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var photographerCols = []string{"id", "name", "location", "price", "rating", "styles", "tags", "bio", "profile_pic", "reviews", "portfolio"}

func TestPhotographerRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPhotographerRepository(db)

	rows := sqlmock.NewRows(photographerCols).
		AddRow(1, "Aarav Mehta", "Delhi", 5000.0, 4.5, "{Outdoor,Candid}", "{Wedding}", "Sunrise shoots", "/img/a.jpg",
			[]byte(`[{"name":"Riya","rating":5,"date":"2024-03-05","comment":"Lovely"}]`), "{/img/p1.jpg}").
		AddRow(2, "Isha Rao", "Mumbai", 15000.0, 3.0, "{}", "{}", "", "", []byte(`[]`), "{}")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, location, price, rating, styles, tags, bio, profile_pic, reviews, portfolio FROM photographers ORDER BY id ASC")).
		WillReturnRows(rows)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{"Outdoor", "Candid"}, list[0].Styles)
	require.Len(t, list[0].Reviews, 1)
	assert.Equal(t, "Riya", list[0].Reviews[0].Name)
	assert.Equal(t, []string{"/img/p1.jpg"}, list[0].Portfolio)
	assert.NotNil(t, list[1].Styles)
	assert.Empty(t, list[1].Reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotographerRepositoryListBadReviews(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPhotographerRepository(db)

	rows := sqlmock.NewRows(photographerCols).
		AddRow(1, "Aarav", "Delhi", 5000.0, 4.5, "{}", "{}", "", "", []byte(`{broken`), "{}")
	mock.ExpectQuery("FROM photographers").WillReturnRows(rows)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode reviews")
}

func TestPhotographerRepositoryGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPhotographerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM photographers WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(photographerCols).
			AddRow(2, "Isha Rao", "Mumbai", 15000.0, 3.0, "{Studio}", "{}", "", "", nil, "{}"))

	record, err := repo.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Isha Rao", record.Name)
	assert.Equal(t, []string{"Studio"}, record.Styles)
	assert.NotNil(t, record.Reviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPhotographerRepositoryGetNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPhotographerRepository(db)

	mock.ExpectQuery("FROM photographers WHERE id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(photographerCols))

	_, err := repo.Get(context.Background(), 9)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
