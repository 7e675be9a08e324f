package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/craftlink/craftlink-api/config"
	"github.com/craftlink/craftlink-api/controllers"
	"github.com/craftlink/craftlink-api/middleware"
	"github.com/craftlink/craftlink-api/models"
	"github.com/craftlink/craftlink-api/services"
	"github.com/craftlink/craftlink-api/tests/testutil"
)

// BookingFlowTestSuite runs the full customer journey against the real router:
// register, login, browse the directory, book, reconcile the payment webhook.
type BookingFlowTestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func (suite *BookingFlowTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(suite.T())
}

func (suite *BookingFlowTestSuite) SetupTest() {
	suite.db = testutil.SetupTestDB(suite.T())
	suite.cfg = testutil.TestConfig()
	services.NewMockDocumentService().SetAsMockForTesting()

	// Same route table as main.setupRouter
	router := gin.New()
	api := router.Group("/api")
	api.POST("/register", controllers.Register)
	api.POST("/login", controllers.Login)
	api.GET("/artisans", controllers.ListArtisans)
	api.POST("/payments/webhook", controllers.PaymentWebhook)
	api.POST("/book", middleware.EnsureValidToken(suite.cfg), controllers.CreateBooking)
	api.POST("/artisan/onboard",
		middleware.EnsureValidToken(suite.cfg),
		middleware.RequireRole(models.RoleArtisan),
		controllers.OnboardArtisan)
	suite.router = router
}

func (suite *BookingFlowTestSuite) postJSON(path, token string, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *BookingFlowTestSuite) postWebhook(body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", "/api/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(controllers.WebhookSignatureHeader, services.SignWebhookBody(suite.cfg.WebhookSecret, payload))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *BookingFlowTestSuite) registerAndLogin(name, phone, role, password string) (uint, string) {
	w := suite.postJSON("/api/register", "", map[string]interface{}{
		"name": name, "phone": phone, "role": role, "password": password,
	})
	suite.Equal(http.StatusOK, w.Code)

	var registerResp map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &registerResp))
	userID := uint(registerResp["user"].(map[string]interface{})["id"].(float64))

	w = suite.postJSON("/api/login", "", map[string]interface{}{
		"phone": phone, "password": password,
	})
	suite.Equal(http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &loginResp))
	return userID, loginResp["token"].(string)
}

func (suite *BookingFlowTestSuite) TestFullBookingFlow() {
	// An artisan registers; an admin action verifies them out of band
	artisanUserID, _ := suite.registerAndLogin("Musa Okafor", "08071110001", "artisan", "secret123")
	suite.NoError(suite.db.Model(&models.Artisan{}).
		Where("user_id = ?", artisanUserID).
		Updates(map[string]interface{}{"verified": true, "avg_rating": 4.7, "category": "plumbing", "city": "Lokoja"}).Error)

	var artisan models.Artisan
	suite.NoError(suite.db.Where("user_id = ?", artisanUserID).First(&artisan).Error)

	// A customer registers, logs in and finds the artisan in the directory
	customerID, customerToken := suite.registerAndLogin("Amina Bello", "08071110002", "customer", "secret456")

	req, _ := http.NewRequest("GET", "/api/artisans?category=plumbing&city=Lokoja", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)

	var rows []map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &rows))
	suite.Len(rows, 1)
	suite.Equal("Musa Okafor", rows[0]["name"])

	// The customer books the artisan
	w = suite.postJSON("/api/book", customerToken, map[string]interface{}{
		"user_id":    customerID,
		"artisan_id": artisan.ID,
		"amount":     8000,
	})
	suite.Equal(http.StatusOK, w.Code)

	var bookResp map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &bookResp))
	providerRef := bookResp["provider_ref"].(string)
	suite.Contains(bookResp["payment_url"], providerRef)

	// The provider reports the payment; the booking becomes paid
	w = suite.postWebhook(map[string]interface{}{
		"provider_ref": providerRef,
		"status":       "successful",
	})
	suite.Equal(http.StatusOK, w.Code)

	var booking models.Booking
	suite.NoError(suite.db.First(&booking, uint(bookResp["bookingId"].(float64))).Error)
	suite.Equal(models.BookingStatusPaid, booking.Status)
	suite.NotNil(booking.PaymentRef)
	suite.Equal(providerRef, *booking.PaymentRef)

	// A replayed callback changes nothing
	w = suite.postWebhook(map[string]interface{}{
		"provider_ref": providerRef,
		"status":       "successful",
	})
	suite.Equal(http.StatusOK, w.Code)

	suite.NoError(suite.db.First(&booking, booking.ID).Error)
	suite.Equal(models.BookingStatusPaid, booking.Status)
}

func (suite *BookingFlowTestSuite) TestBookingRequiresToken() {
	w := suite.postJSON("/api/book", "", map[string]interface{}{
		"user_id": 1, "artisan_id": 1, "amount": 100,
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	var count int64
	suite.db.Model(&models.Booking{}).Count(&count)
	suite.Zero(count)
}

func (suite *BookingFlowTestSuite) TestOnboardRequiresArtisanRole() {
	_, customerToken := suite.registerAndLogin("Not Artisan", "08071110010", "customer", "secret123")

	payload := []byte("user_id=1")
	req, _ := http.NewRequest("POST", "/api/artisan/onboard", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+customerToken)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *BookingFlowTestSuite) TestWebhookWithoutSignatureRejected() {
	payload, _ := json.Marshal(map[string]interface{}{
		"provider_ref": "whatever", "status": "successful",
	})
	req, _ := http.NewRequest("POST", "/api/payments/webhook", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestBookingFlowTestSuite(t *testing.T) {
	suite.Run(t, new(BookingFlowTestSuite))
}
