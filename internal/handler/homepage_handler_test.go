package handler

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertHomepageUnknownSection(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewHomepageHandler(db, nil)

	c, rec := newTestContext(http.MethodPut, "/api/admin/homepage/banner", `{"payload":{},"is_active":true}`)
	c.SetParamNames("section")
	c.SetParamValues("banner")
	require.NoError(t, h.Upsert(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertHomepageRejectsMissingPayload(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewHomepageHandler(db, nil)

	c, rec := newTestContext(http.MethodPut, "/api/admin/homepage/hero", `{"is_active":true}`)
	c.SetParamNames("section")
	c.SetParamValues("hero")
	require.NoError(t, h.Upsert(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertHomepageCreatesSection(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewHomepageHandler(db, nil)

	mock.ExpectQuery(`SELECT (.+) FROM "homepage_sections" WHERE section = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "section", "payload", "is_active"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "homepage_sections"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	body := `{"payload":{"title":"Bienvenue chez Hanouti","cta":"Voir les produits"},"is_active":true}`
	c, rec := newTestContext(http.MethodPut, "/api/admin/homepage/hero", body)
	c.SetParamNames("section")
	c.SetParamValues("hero")
	require.NoError(t, h.Upsert(c))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Bienvenue chez Hanouti")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactFormValidation(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewContactHandler(db)

	c, rec := newTestContext(http.MethodPost, "/api/contact", `{"name":"Amina"}`)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactFormStoresMessage(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewContactHandler(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "contact_messages"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	body := `{"name":"Amina","email":"amina@example.com","message":"Avez-vous de l'huile d'argan ?"}`
	c, rec := newTestContext(http.MethodPost, "/api/contact", body)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
