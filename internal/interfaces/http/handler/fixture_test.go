package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	brandapp "github.com/raqueto/backend/internal/application/brand"
	catalogapp "github.com/raqueto/backend/internal/application/catalog"
	collectionapp "github.com/raqueto/backend/internal/application/collection"
	linkapp "github.com/raqueto/backend/internal/application/link"
	newsletterapp "github.com/raqueto/backend/internal/application/newsletter"
	orderapp "github.com/raqueto/backend/internal/application/order"
	paymentapp "github.com/raqueto/backend/internal/application/payment"
	"github.com/raqueto/backend/internal/application/upload"
	"github.com/raqueto/backend/internal/infrastructure/event"
	"github.com/raqueto/backend/internal/infrastructure/payment"
	"github.com/raqueto/backend/internal/infrastructure/persistence"
	"github.com/raqueto/backend/internal/infrastructure/persistence/models"
	"github.com/raqueto/backend/internal/infrastructure/storage"
	"github.com/raqueto/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_handler_test"

func init() {
	gin.SetMode(gin.TestMode)
}

// apiFixture wires real services over an in-memory sqlite database
type apiFixture struct {
	db     *gorm.DB
	engine *gin.Engine
	files  *storage.StubFileStore
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.BrandModel{},
		&models.NewsletterSubscriptionModel{},
		&models.CollectionModel{},
		&models.CollectionImageModel{},
		&models.ProductModel{},
		&models.ProductBrandModel{},
		&models.CollectionImageLinkModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
	))

	log := zap.NewNop()
	bus := event.NewInMemoryEventBus(log)
	files := storage.NewStubFileStore("https://cdn.test")

	brandRepo := persistence.NewGormBrandRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)

	brands := brandapp.NewBrandService(brandRepo, nil, log)
	products := catalogapp.NewProductService(productRepo, bus, log)
	links := linkapp.NewProductBrandService(persistence.NewGormProductBrandRepository(db), brandRepo, productRepo, brands, log)
	collections := collectionapp.NewCollectionService(
		persistence.NewGormCollectionRepository(db),
		persistence.NewGormCollectionImageRepository(db),
		persistence.NewGormCollectionImageLinkRepository(db),
		files,
		log,
	)
	newsletter := newsletterapp.NewNewsletterService(persistence.NewGormNewsletterRepository(db), nil, "", log)
	confirmations := orderapp.NewConfirmationService(orderRepo, nil, "", log)
	webhooks := paymentapp.NewWebhookService(payment.NewStripeWebhookVerifier(testWebhookSecret), orderRepo, bus, log)

	bh := NewBrandHandler(brands)
	ph := NewProductHandler(products)
	pbh := NewProductBrandHandler(links)
	ch := NewCollectionHandler(collections)
	uh := NewUploadHandler(upload.NewService(files, log), 2, 1)
	nh := NewNewsletterHandler(newsletter)
	oh := NewOrderHandler(confirmations)
	wh := NewPaymentWebhookHandler(webhooks)

	r := gin.New()
	admin := r.Group("/admin")
	admin.GET("/brands", bh.List)
	admin.POST("/brands", bh.Create)
	admin.GET("/brands/:id", bh.Get)
	admin.POST("/brands/:id", bh.Update)
	admin.DELETE("/brands/:id", bh.Delete)
	admin.GET("/products", ph.List)
	admin.POST("/products", ph.Create)
	admin.GET("/products/:id", ph.Get)
	admin.DELETE("/products/:id", ph.Delete)
	admin.GET("/products/:id/brand", pbh.Get)
	admin.POST("/products/:id/brand", pbh.Set)
	admin.DELETE("/products/:id/brand", pbh.Remove)
	admin.GET("/collections", ch.List)
	admin.POST("/collections", ch.Create)
	admin.GET("/collections/:id", ch.Get)
	admin.DELETE("/collections/:id", ch.Delete)
	admin.POST("/collections/:id/images", ch.CreateImages)
	admin.GET("/collections/:id/images", ch.ListImages)
	admin.DELETE("/collections/:id/images/:image_id", ch.DeleteImage)
	admin.POST("/uploads", uh.Upload)
	admin.GET("/newsletter", nh.List)
	admin.POST("/newsletter", nh.Create)
	admin.POST("/orders/:id/confirmation", oh.Confirm)

	store := r.Group("/store")
	store.GET("/brands", bh.StoreList)
	store.GET("/brands/:slug", bh.StoreGet)
	store.GET("/brands/:slug/products", pbh.BrandProducts)
	store.GET("/collections/:id/images", ch.ListImages)
	store.POST("/newsletter/subscribe", nh.Subscribe)
	store.POST("/newsletter/unsubscribe", nh.Unsubscribe)

	r.POST("/hooks/payment/stripe", wh.HandleStripe)

	return &apiFixture{db: db, engine: r, files: files}
}

// do sends a JSON request (body may be nil) and returns the recorder
func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	resp := decode[dto.ErrorResponse](t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error
}

func (f *apiFixture) createBrand(t *testing.T, body map[string]any) brandapp.BrandResponse {
	t.Helper()
	w := f.do(t, http.MethodPost, "/admin/brands", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return *decode[BrandEnvelope](t, w).Brand
}
