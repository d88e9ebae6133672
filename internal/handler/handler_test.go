package handler

import (
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"hanouti-api/pkg/config"
	"hanouti-api/prometheus"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	prometheus.InitMetrics(&config.Config{
		Metrics: config.MetricsConfig{Prefix: "test"},
	})
	os.Exit(m.Run())
}

// newTestDB returns a gorm handle backed by sqlmock with regexp query
// matching, so expectations can use loose SQL patterns.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() { sqlDB.Close() })

	dialector := gormpostgres.New(gormpostgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to open gorm over sqlmock")

	return db, mock
}

// newTestContext builds an echo context with the app validator wired
func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name_fr", "name_ar", "slug", "description",
		"price", "image_url", "category_id", "stock", "is_active",
	})
}

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_number", "customer_name", "customer_phone", "customer_email",
		"delivery_method", "address", "city", "notes", "status", "total",
	})
}

func categoryRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name_fr", "name_ar", "slug", "image_url",
		"parent_id", "sort_order", "is_active",
	})
}

func orderItemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_id", "product_id", "name_fr", "price", "quantity",
	})
}
