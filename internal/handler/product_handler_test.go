package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"hanouti-api/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreConfig() config.StoreConfig {
	return config.StoreConfig{ShuffleFetchLimit: 500, PageSize: 24}
}

func expectActiveProducts(t *testing.T, h *ProductHandler, target string) ProductListResponse {
	t.Helper()
	c, rec := newTestContext(http.MethodGet, target, "")
	require.NoError(t, h.ListPublic(c))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ProductListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestListPublicShuffleIsStableForSameSeed(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewProductHandler(db, testStoreConfig())

	for i := 0; i < 2; i++ {
		rows := productRows()
		for id := 1; id <= 8; id++ {
			rows.AddRow(id, "Produit", "منتج", "p", "", 1.0, "", 1, 10, true)
		}
		mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE is_active = `).
			WillReturnRows(rows)
	}

	first := expectActiveProducts(t, h, "/api/products?seed=42&page=1&page_size=5")
	second := expectActiveProducts(t, h, "/api/products?seed=42&page=1&page_size=5")

	require.Len(t, first.Products, 5)
	assert.Equal(t, int64(42), first.Seed)
	for i := range first.Products {
		assert.Equal(t, first.Products[i].ID, second.Products[i].ID,
			"same seed must give the same ordering at position %d", i)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPublicPagesDoNotOverlap(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewProductHandler(db, testStoreConfig())

	for i := 0; i < 2; i++ {
		rows := productRows()
		for id := 1; id <= 8; id++ {
			rows.AddRow(id, "Produit", "منتج", "p", "", 1.0, "", 1, 10, true)
		}
		mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE is_active = `).
			WillReturnRows(rows)
	}

	pageOne := expectActiveProducts(t, h, "/api/products?seed=7&page=1&page_size=5")
	pageTwo := expectActiveProducts(t, h, "/api/products?seed=7&page=2&page_size=5")

	require.Len(t, pageOne.Products, 5)
	require.Len(t, pageTwo.Products, 3)

	seen := make(map[uint]bool)
	for _, p := range append(pageOne.Products, pageTwo.Products...) {
		assert.False(t, seen[p.ID], "product %d appeared twice across pages", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 8, "paging must cover the whole catalog")
}

func TestListPublicServesAnyCallerSeed(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewProductHandler(db, testStoreConfig())

	// math.MinInt64 parses fine and must still yield a page, not a 500
	seeds := []string{"-9223372036854775808", "9223372036854775807", "-1"}
	for range seeds {
		rows := productRows()
		for id := 1; id <= 6; id++ {
			rows.AddRow(id, "Produit", "منتج", "p", "", 1.0, "", 1, 10, true)
		}
		mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE is_active = `).
			WillReturnRows(rows)
	}

	for _, seed := range seeds {
		resp := expectActiveProducts(t, h, "/api/products?seed="+seed)
		assert.Len(t, resp.Products, 6, "seed %s", seed)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPublicFailsOpenOnConnectivityError(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewProductHandler(db, testStoreConfig())

	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE is_active = `).
		WillReturnError(errConnRefused{})

	resp := expectActiveProducts(t, h, "/api/products")
	assert.Empty(t, resp.Products)
}

func TestGetProductBySlugNotFound(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewProductHandler(db, testStoreConfig())

	mock.ExpectQuery(`SELECT (.+) FROM "products" WHERE slug = `).
		WillReturnRows(productRows())

	c, rec := newTestContext(http.MethodGet, "/api/products/nope", "")
	c.SetParamNames("slug")
	c.SetParamValues("nope")
	require.NoError(t, h.GetBySlug(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductValidation(t *testing.T) {
	db, mock := newTestDB(t)
	h := NewProductHandler(db, testStoreConfig())

	tests := []struct {
		name string
		body string
	}{
		{"missing names", `{"slug":"x","price":1,"category_id":1}`},
		{"zero price", `{"name_fr":"A","name_ar":"B","slug":"x","price":0,"category_id":1}`},
		{"negative price", `{"name_fr":"A","name_ar":"B","slug":"x","price":-2,"category_id":1}`},
		{"missing category", `{"name_fr":"A","name_ar":"B","slug":"x","price":1}`},
		{"negative stock", `{"name_fr":"A","name_ar":"B","slug":"x","price":1,"category_id":1,"stock":-1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodPost, "/api/admin/products", tt.body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
