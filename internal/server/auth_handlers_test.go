package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/config"
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test_secret_at_least_32_characters!",
		TokenTTLMinutes: 60,
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":     "Alice Example",
				"username": "alice",
				"password": "password1",
				"gender":   "female",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByUsername", mock.Anything, "alice").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Duplicate user",
			body: map[string]string{
				"name":     "Other Alice",
				"username": "alice",
				"password": "password2",
				"gender":   "female",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByUsername", mock.Anything, "alice").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Password exactly five characters rejected",
			body: map[string]string{
				"name":     "Bob Example",
				"username": "bobby",
				"password": "abcde",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Password exactly six characters accepted",
			body: map[string]string{
				"name":     "Bob Example",
				"username": "bobby",
				"password": "abcdef",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByUsername", mock.Anything, "bobby").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Missing fields",
			body: map[string]string{
				"username": "charlie",
			},
			mockSetup:      func(m *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := &Server{config: testConfig(), userRepo: mockRepo}
			app := fiber.New()
			app.Post("/register/", s.Register)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/register/", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	stored := &models.User{ID: 7, Username: "alice", Password: string(hash)}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(m *MockUserRepository)
		expectedStatus int
		expectToken    bool
	}{
		{
			name: "Success",
			body: map[string]string{"username": "alice", "password": "password1"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			expectedStatus: http.StatusOK,
			expectToken:    true,
		},
		{
			name: "Unknown user",
			body: map[string]string{"username": "nobody", "password": "password1"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByUsername", mock.Anything, "nobody").Return(nil, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Wrong password",
			body: map[string]string{"username": "alice", "password": "wrongpass"},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)

			s := &Server{config: testConfig(), userRepo: mockRepo}
			app := fiber.New()
			app.Post("/login/", s.Login)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/login/", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			assert.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectToken {
				var payload struct {
					JWTToken string `json:"jwtToken"`
				}
				assert.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
				assert.NotEmpty(t, payload.JWTToken)
			}
		})
	}
}

func TestTokenRoundTrip(t *testing.T) {
	s := &Server{config: testConfig()}

	token, err := s.generateToken(42, "alice")
	assert.NoError(t, err)

	claims, err := s.parseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	s := &Server{config: testConfig()}

	token, err := s.generateToken(42, "alice")
	assert.NoError(t, err)

	_, err = s.parseToken(token + "x")
	assert.Error(t, err)

	other := &Server{config: &config.Config{
		JWTSecret:       "a_completely_different_signing_secret",
		TokenTTLMinutes: 60,
	}}
	_, err = other.parseToken(token)
	assert.Error(t, err)
}
