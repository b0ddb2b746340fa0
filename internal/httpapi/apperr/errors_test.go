package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(New(NotFound, "missing")))
	assert.Equal(t, Conflict, KindOf(fmt.Errorf("wrapped: %w", New(Conflict, "dup"))))
	assert.Equal(t, Internal, KindOf(errors.New("plain")))
}

func TestFromStorageRecordNotFound(t *testing.T) {
	err := FromStorage(gorm.ErrRecordNotFound, "title not found")
	assert.Equal(t, NotFound, KindOf(err))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFromStorageUniqueViolation(t *testing.T) {
	// losing side of a concurrent duplicate insert
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_reviews_title_author"}
	err := FromStorage(fmt.Errorf("create: %w", pgErr), "create review")
	assert.Equal(t, Conflict, KindOf(err))
}

func TestFromStorageForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	err := FromStorage(pgErr, "create comment")
	assert.Equal(t, NotFound, KindOf(err))
}

func TestFromStorageTranslatedConstraintErrors(t *testing.T) {
	// dialectors with error translation surface gorm sentinels
	// instead of driver error types
	err := FromStorage(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey), "create review")
	assert.Equal(t, Conflict, KindOf(err))

	err = FromStorage(gorm.ErrForeignKeyViolated, "create comment")
	assert.Equal(t, NotFound, KindOf(err))
}

func TestFromStorageUnknownError(t *testing.T) {
	err := FromStorage(errors.New("connection reset"), "list titles")
	assert.Equal(t, Internal, KindOf(err))
}

func TestFromStorageNil(t *testing.T) {
	assert.NoError(t, FromStorage(nil, "noop"))
}
