package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrayfi/hrayfi_backend/models"
	"github.com/hrayfi/hrayfi_backend/utils"
)

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	v := validator.New()
	v.RegisterValidation("mophone", func(fl validator.FieldLevel) bool {
		return utils.IsValidMoroccanPhone(fl.Field().String())
	})
	e.Validator = &testValidator{validator: v}
	return e
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// The handlers below reject the request before touching the database, so a
// nil-DB controller is enough to exercise the validation paths.

func TestGetCategoryInvalidID(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonRequest(e, http.MethodGet, "/api/services/not-a-hex-id", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-hex-id")

	controller := &CategoryController{}
	require.NoError(t, controller.GetCategory(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid category ID", resp.Error)
}

func TestSearchCategoriesShortQuery(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonRequest(e, http.MethodGet, "/api/services/search?q=a", "")

	controller := &CategoryController{}
	require.NoError(t, controller.SearchCategories(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Search term must contain at least 2 characters", resp.Error)
}

func TestCreateCategoryValidation(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonRequest(e, http.MethodPost, "/api/admin/services", `{"name":"x"}`)

	controller := &CategoryController{}
	require.NoError(t, controller.CreateCategory(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotEmpty(t, resp.Details)
	assert.Equal(t, "Name", resp.Details[0].Field)
}

func TestRegisterArtisanValidation(t *testing.T) {
	e := newTestEcho()
	body := `{
		"firstName": "Ahmed",
		"lastName": "Alami",
		"email": "ahmed@example.com",
		"phone": "+33612345678",
		"profession": "Plombier",
		"categories": ["64f000000000000000000001"],
		"city": "Casablanca"
	}`
	c, rec := jsonRequest(e, http.MethodPost, "/api/artisans", body)

	controller := &ArtisanController{}
	require.NoError(t, controller.RegisterArtisan(c))

	// A French number fails the Moroccan phone check.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	found := false
	for _, d := range resp.Details {
		if d.Field == "Phone" {
			found = true
			assert.Equal(t, "Invalid Moroccan phone number", d.Message)
		}
	}
	assert.True(t, found)
}

func TestGetAllArtisansInvalidCategory(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonRequest(e, http.MethodGet, "/api/artisans?category=nope", "")

	controller := &ArtisanController{}
	require.NoError(t, controller.GetAllArtisans(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid category ID", resp.Error)
}

func TestCreateClientRequestValidation(t *testing.T) {
	e := newTestEcho()
	// Description below the 10-character minimum.
	body := `{
		"clientName": "Sara",
		"clientEmail": "sara@example.com",
		"clientPhone": "0612345678",
		"serviceCategory": "64f000000000000000000001",
		"serviceType": "Fuite d'eau",
		"description": "court",
		"city": "Rabat"
	}`
	c, rec := jsonRequest(e, http.MethodPost, "/api/demandes", body)

	controller := &ClientRequestController{}
	require.NoError(t, controller.CreateClientRequest(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	found := false
	for _, d := range resp.Details {
		if d.Field == "Description" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUpdateRequestStatusInvalidStatus(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonRequest(e, http.MethodPut, "/api/demandes/64f000000000000000000001/status", `{"status":"done"}`)
	c.SetParamNames("id")
	c.SetParamValues("64f000000000000000000001")

	controller := &ClientRequestController{}
	require.NoError(t, controller.UpdateRequestStatus(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid status", resp.Error)
}

func TestUpdateArtisanContactStatusInvalidIDs(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonRequest(e, http.MethodPut, "/api/demandes/bad/artisan/alsobad/status", `{"status":"interested"}`)
	c.SetParamNames("id", "artisanId")
	c.SetParamValues("bad", "alsobad")

	controller := &ClientRequestController{}
	require.NoError(t, controller.UpdateArtisanContactStatus(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid request ID", resp.Error)
}

func TestContactArtisanInvalidArtisanID(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonRequest(e, http.MethodPost, "/api/demandes/64f000000000000000000001/contact", `{"artisanId":"nope"}`)
	c.SetParamNames("id")
	c.SetParamValues("64f000000000000000000001")

	controller := &ClientRequestController{}
	require.NoError(t, controller.ContactArtisan(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Invalid artisan ID", resp.Error)
}

func TestValidationMessages(t *testing.T) {
	e := newTestEcho()
	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/login", `{"email":"nope","password":""}`)

	controller := &AuthController{}
	require.NoError(t, controller.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	messages := map[string]string{}
	for _, d := range resp.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Invalid email address", messages["Email"])
	assert.Equal(t, "This field is required", messages["Password"])
}
