// internal/router/router_test.go
package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/cartlink/internal/catalog"
	"github.com/javajoker/cartlink/internal/config"
	"github.com/javajoker/cartlink/internal/i18n"
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/services"
	"github.com/javajoker/cartlink/internal/utils"
)

const testOrigin = "https://shop.example.com"

type memoryUsers struct {
	users []*models.User
}

func (m *memoryUsers) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return nil, services.ErrInvalidCredentials
}

func (m *memoryUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, services.ErrUserNotFound
}

func (m *memoryUsers) TouchLastLogin(ctx context.Context, user *models.User, at time.Time) error {
	return nil
}

type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
	token  string
	cancel context.CancelFunc
}

func (suite *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(i18n.Initialize("", "en"))
}

func (suite *RouterTestSuite) SetupTest() {
	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "router-test-secret", AccessTokenTTL: 1},
		Store: config.StoreConfig{
			OriginURL:          testOrigin,
			CurrencySymbol:     "$",
			CurrencyPosition:   "left",
			PriceDecimals:      2,
			PriceLocale:        "en",
			DefaultSearchLimit: 20,
			MaxSearchLimit:     100,
		},
		I18n:      config.I18nConfig{DefaultLocale: "en"},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}

	cat, err := catalog.LoadFile("../catalog/testdata/store.json", catalog.Limits{Default: 20, Max: 100})
	suite.Require().NoError(err)

	manager := &models.User{
		BaseModel: models.BaseModel{ID: 1},
		Username:  "manager",
		Email:     "manager@example.com",
		Role:      models.UserRoleShopManager,
		Status:    models.UserStatusActive,
	}
	suite.Require().NoError(manager.SetPassword("correct-horse"))

	var ctx context.Context
	ctx, suite.cancel = context.WithCancel(context.Background())
	suite.router = Initialize(ctx, cfg, NewServices(cfg, cat, &memoryUsers{users: []*models.User{manager}}))

	suite.token, err = utils.GenerateJWT(1, "manager", string(models.UserRoleShopManager), 1)
	suite.Require().NoError(err)
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.cancel()
}

func (suite *RouterTestSuite) do(method, path string, body interface{}, token string, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	return w, response
}

func errorCode(response map[string]interface{}) string {
	if e, ok := response["error"].(map[string]interface{}); ok {
		code, _ := e["code"].(string)
		return code
	}
	return ""
}

func errorMessage(response map[string]interface{}) string {
	if e, ok := response["error"].(map[string]interface{}); ok {
		message, _ := e["message"].(string)
		return message
	}
	return ""
}

func (suite *RouterTestSuite) TestHealth() {
	w, response := suite.do("GET", "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("healthy", response["status"])
	suite.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (suite *RouterTestSuite) TestRequestIDIsEchoed() {
	w, _ := suite.do("GET", "/health", nil, "", "X-Request-ID", "req-123")
	suite.Equal("req-123", w.Header().Get("X-Request-ID"))
}

func (suite *RouterTestSuite) TestAuthRequired() {
	w, response := suite.do("GET", "/v1/products/search?term=mug", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.False(response["success"].(bool))
	suite.Equal("UNAUTHORIZED", errorCode(response))

	w, _ = suite.do("GET", "/v1/products/search", nil, "not-a-token")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *RouterTestSuite) TestCustomerRoleIsForbidden() {
	token, err := utils.GenerateJWT(5, "shopper", "customer", 1)
	suite.Require().NoError(err)

	w, response := suite.do("GET", "/v1/product-types", nil, token)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("FORBIDDEN", errorCode(response))
}

func (suite *RouterTestSuite) TestLoginAndMe() {
	w, response := suite.do("POST", "/v1/auth/login", map[string]string{
		"username": "manager",
		"password": "correct-horse",
	}, "")
	suite.Require().Equal(http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	suite.Equal("Bearer", data["token_type"])
	token := data["token"].(string)

	w, response = suite.do("GET", "/v1/auth/me", nil, token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("manager", response["data"].(map[string]interface{})["username"])
}

func (suite *RouterTestSuite) TestLoginFailures() {
	w, response := suite.do("POST", "/v1/auth/login", map[string]string{
		"username": "manager",
		"password": "wrong",
	}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("Invalid username or password", errorMessage(response))

	w, response = suite.do("POST", "/v1/auth/login", map[string]string{"username": "manager"}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", errorCode(response))
}

func (suite *RouterTestSuite) TestSearchProducts() {
	w, response := suite.do("GET", "/v1/products/search?term=mug", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("1", w.Header().Get("X-Total-Count"))

	records := response["data"].([]interface{})
	suite.Require().Len(records, 1)
	suite.Equal("$12.50", records[0].(map[string]interface{})["price"])
}

func (suite *RouterTestSuite) TestGetProduct() {
	w, response := suite.do("GET", "/v1/products/31", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("Hoodie - Color: Red, Size: M", response["data"].(map[string]interface{})["name"])

	w, _ = suite.do("GET", "/v1/products/abc", nil, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)

	w, response = suite.do("GET", "/v1/products/999", nil, suite.token)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Product not found", errorMessage(response))

	_, response = suite.do("GET", "/v1/products/999", nil, suite.token, "Accept-Language", "zh-TW,zh;q=0.9")
	suite.Equal("找不到商品", errorMessage(response))

	_, response = suite.do("GET", "/v1/products/999?lang=zh_TW", nil, suite.token)
	suite.Equal("找不到商品", errorMessage(response))
}

func (suite *RouterTestSuite) TestVariationsRoutes() {
	w, response := suite.do("GET", "/v1/products/30/variations", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(response["data"].([]interface{}), 2)

	w, response = suite.do("POST", "/v1/products/30/variations/filter", map[string]interface{}{
		"attributes": map[string]string{"pa_size": "m"},
	}, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	filtered := response["data"].([]interface{})
	suite.Require().Len(filtered, 1)
	suite.Equal(float64(31), filtered[0].(map[string]interface{})["id"])
}

func (suite *RouterTestSuite) TestValidationRoute() {
	w, response := suite.do("GET", "/v1/products/30/validation", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	suite.False(data["is_valid"].(bool))
	suite.Len(data["errors"].([]interface{}), 1)
	suite.Empty(data["warnings"].([]interface{}))
}

func (suite *RouterTestSuite) TestProductTypes() {
	w, response := suite.do("GET", "/v1/product-types", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	types := response["data"].(map[string]interface{})["types"].([]interface{})
	suite.Len(types, 5)
}

func (suite *RouterTestSuite) TestCouponAndPageSearch() {
	w, response := suite.do("GET", "/v1/coupons/search?term=welcome", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	coupons := response["data"].([]interface{})
	suite.Require().Len(coupons, 1)
	suite.Equal("WELCOME", coupons[0].(map[string]interface{})["code"])

	w, response = suite.do("GET", "/v1/pages/search?search=about", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Len(response["data"].([]interface{}), 1)
}

func (suite *RouterTestSuite) TestBuildLink() {
	w, response := suite.do("POST", "/v1/links", map[string]interface{}{
		"link_type": "checkout",
		"items":     []map[string]interface{}{{"product_id": 18, "quantity": 2}, {"product_id": 50}},
		"coupon":    "WELCOME",
	}, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	data := response["data"].(map[string]interface{})
	suite.Equal(testOrigin+"/checkout-link/?products=18:2,50:1&coupon=WELCOME", data["url"])
	suite.Equal("Link generated", response["meta"].(map[string]interface{})["message"])
}

func (suite *RouterTestSuite) TestBuildLinkErrors() {
	w, response := suite.do("POST", "/v1/links", map[string]interface{}{
		"link_type": "checkout",
		"items":     []map[string]interface{}{{"product_id": 21}},
	}, suite.token)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Equal("NOT_ELIGIBLE", errorCode(response))
	details := response["error"].(map[string]interface{})["details"].(map[string]interface{})
	suite.Equal(float64(21), details["product_id"])

	w, response = suite.do("POST", "/v1/links", map[string]interface{}{
		"link_type": "wishlist",
		"items":     []map[string]interface{}{{"product_id": 18}},
	}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", errorCode(response))

	w, response = suite.do("POST", "/v1/links", map[string]interface{}{
		"link_type": "add-to-cart",
		"items":     []map[string]interface{}{{"product_id": 18}},
		"redirect":  map[string]interface{}{"type": "page", "page_id": 404},
	}, suite.token)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Page not found", errorMessage(response))

	w, response = suite.do("POST", "/v1/links", map[string]interface{}{
		"link_type": "add-to-cart",
		"items":     []map[string]interface{}{{"product_id": 999}},
	}, suite.token)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Product not found", errorMessage(response))

	w, response = suite.do("POST", "/v1/links", map[string]interface{}{"link_type": "checkout"}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("BAD_REQUEST", errorCode(response))
}

func (suite *RouterTestSuite) TestPreviewLink() {
	w, response := suite.do("GET", "/v1/links/preview?link_type=checkout", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(testOrigin+"/checkout-link/?products=PRODUCT_ID:QUANTITY", response["data"].(map[string]interface{})["placeholder"])

	_, response = suite.do("GET", "/v1/links/preview?redirect=cart", nil, suite.token)
	suite.Equal(testOrigin+"/cart/?add-to-cart=PRODUCT_ID&quantity=1", response["data"].(map[string]interface{})["placeholder"])
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
