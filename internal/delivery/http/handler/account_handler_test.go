package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pinpoint-accounts/internal/config"
	domainAccount "pinpoint-accounts/internal/domain/account"
	"pinpoint-accounts/internal/logger"
	"pinpoint-accounts/internal/usecase/account"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("development"); err != nil {
		panic(err)
	}
	m.Run()
}

type memoryRepo struct {
	accounts map[uuid.UUID]*domainAccount.Account
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{accounts: make(map[uuid.UUID]*domainAccount.Account)}
}

func (r *memoryRepo) Create(_ context.Context, acc *domainAccount.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == acc.Email {
			return domainAccount.ErrAccountAlreadyExists
		}
	}
	acc.ID = uuid.New()
	acc.CreatedAt = time.Now()
	acc.UpdatedAt = time.Now()
	stored := *acc
	r.accounts[acc.ID] = &stored
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*domainAccount.Account, error) {
	acc, ok := r.accounts[id]
	if !ok {
		return nil, domainAccount.ErrAccountNotFound
	}
	copied := *acc
	return &copied, nil
}

func (r *memoryRepo) GetByEmail(_ context.Context, email string) (*domainAccount.Account, error) {
	for _, acc := range r.accounts {
		if acc.Email == email {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domainAccount.ErrAccountNotFound
}

func (r *memoryRepo) GetByOTP(_ context.Context, otp string) (*domainAccount.Account, error) {
	for _, acc := range r.accounts {
		if acc.EmailOTP != nil && *acc.EmailOTP == otp {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domainAccount.ErrAccountNotFound
}

func (r *memoryRepo) List(_ context.Context, limit, offset int) ([]*domainAccount.Account, error) {
	all := make([]*domainAccount.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		copied := *acc
		all = append(all, &copied)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memoryRepo) SetOTP(_ context.Context, id uuid.UUID, otp string, expiresAt time.Time) error {
	acc, ok := r.accounts[id]
	if !ok {
		return domainAccount.ErrAccountNotFound
	}
	acc.EmailOTP = &otp
	acc.EmailOTPExpiresAt = &expiresAt
	return nil
}

func (r *memoryRepo) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	acc, ok := r.accounts[id]
	if !ok {
		return domainAccount.ErrAccountNotFound
	}
	acc.IsEmailVerified = true
	acc.EmailOTP = nil
	acc.EmailOTPExpiresAt = nil
	return nil
}

func (r *memoryRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	acc, ok := r.accounts[id]
	if !ok {
		return domainAccount.ErrAccountNotFound
	}
	acc.PasswordHash = passwordHash
	acc.EmailOTP = nil
	acc.EmailOTPExpiresAt = nil
	return nil
}

func (r *memoryRepo) UpdateSessionToken(_ context.Context, id uuid.UUID, token string) error {
	acc, ok := r.accounts[id]
	if !ok {
		return domainAccount.ErrAccountNotFound
	}
	acc.SessionToken = &token
	return nil
}

func (r *memoryRepo) DeleteAll(_ context.Context) (int64, error) {
	deleted := int64(len(r.accounts))
	r.accounts = make(map[uuid.UUID]*domainAccount.Account)
	return deleted, nil
}

type noopNotifier struct{}

func (noopNotifier) Send(context.Context, string, string, string, map[string]interface{}) error {
	return nil
}

func newTestRouter() (*gin.Engine, *memoryRepo) {
	repo := newMemoryRepo()
	cfg := &config.Config{
		JWT:   config.JWTConfig{Secret: "handler-test-secret", ExpiryDays: 7},
		Admin: config.AdminConfig{DeleteTag: "handler-admin-tag"},
	}
	service := account.NewService(repo, noopNotifier{}, cfg)
	h := NewAccountHandler(service)

	router := gin.New()
	h.RegisterRoutes(router.Group(""))
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerBody() map[string]interface{} {
	return map[string]interface{}{
		"firstName":   "Ada",
		"lastName":    "Lovelace",
		"userName":    "ada",
		"dateOfBirth": "1815-12-10",
		"city":        "London",
		"state":       "England",
		"email":       "ada@example.com",
		"password":    "secret123",
	}
}

func TestRegisterUserEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/registerUser", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		StatusCode int    `json:"statusCode"`
		Message    string `json:"message"`
		Data       struct {
			Account struct {
				ID              uuid.UUID `json:"id"`
				AccountType     string    `json:"accountType"`
				Email           string    `json:"email"`
				IsEmailVerified bool      `json:"isEmailVerified"`
			} `json:"account"`
			Token        string `json:"token"`
			OTPEmailSent bool   `json:"otpEmailSent"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	assert.Equal(t, http.StatusCreated, envelope.StatusCode)
	assert.Equal(t, "user", envelope.Data.Account.AccountType)
	assert.False(t, envelope.Data.Account.IsEmailVerified)
	assert.NotEmpty(t, envelope.Data.Token)
	assert.True(t, envelope.Data.OTPEmailSent)

	// Neither the hash nor the pending OTP leaks into the response.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "emailOtp\"")
}

func TestRegisterUserEndpointMissingField(t *testing.T) {
	router, _ := newTestRouter()

	body := registerBody()
	delete(body, "firstName")

	w := doJSON(t, router, http.MethodPost, "/auth/registerUser", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "firstName field missing")
}

func TestRegisterUserEndpointInvalidEmail(t *testing.T) {
	router, _ := newTestRouter()

	body := registerBody()
	body["email"] = "not-an-email"

	w := doJSON(t, router, http.MethodPost, "/auth/registerUser", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email format")
}

func TestRegisterUserEndpointDuplicateEmail(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/registerUser", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/registerUser", registerBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterPartnerEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	body := registerBody()
	body["email"] = "grace@example.com"
	body["legalName"] = "Hopper Computing LLC"
	body["address"] = "1 Navy Way"
	body["category"] = "technology"

	w := doJSON(t, router, http.MethodPost, "/auth/registerPartner", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "partnerDetails")
	assert.Contains(t, w.Body.String(), "Hopper Computing LLC")
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/registerUser", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/auth/loginUser", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Login Successful")

	w = doJSON(t, router, http.MethodPost, "/auth/loginUser", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyUserEndpoint(t *testing.T) {
	router, repo := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/registerUser", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	stored, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.EmailOTP)

	w = doJSON(t, router, http.MethodPost, "/auth/verifyUser?emailOtp="+*stored.EmailOTP, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Email Verification Successful")

	w = doJSON(t, router, http.MethodPost, "/auth/verifyUser", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No otp detected")
}

func TestGetSingleUserEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/auth/getSingleUser/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAllUsersEndpointHidesHashes(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/registerUser", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/auth/getAllUsers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := strings.ToLower(w.Body.String())
	assert.NotContains(t, body, "passwordhash")
	assert.NotContains(t, body, "$2a$")
}

func TestDeleteAllUsersEndpoint(t *testing.T) {
	router, repo := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/auth/registerUser", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/auth/deleteAllUsers/wrong-tag", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Len(t, repo.accounts, 1)

	w = doJSON(t, router, http.MethodDelete, "/auth/deleteAllUsers/handler-admin-tag", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.accounts)
}
