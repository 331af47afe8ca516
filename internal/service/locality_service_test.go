package service

import (
	"context"
	"errors"
	"testing"

	"contractor-directory-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLocalityRepository is a mock implementation of the LocalityRepository interface
type MockLocalityRepository struct {
	mock.Mock
}

func (m *MockLocalityRepository) SearchLocalitiesByText(ctx context.Context, query string, limit int) ([]models.Locality, error) {
	args := m.Called(ctx, query, limit)
	localities, _ := args.Get(0).([]models.Locality)
	return localities, args.Error(1)
}

func (m *MockLocalityRepository) FindNearestLocality(ctx context.Context, lat float64, lon float64) (*models.Locality, error) {
	args := m.Called(ctx, lat, lon)
	locality, _ := args.Get(0).(*models.Locality)
	return locality, args.Error(1)
}

var blacktown = models.Locality{
	ID:        2,
	Name:      "Blacktown",
	State:     "NSW",
	Postcode:  "2148",
	Latitude:  -33.7710,
	Longitude: 150.9060,
}

func TestLocalityService_Lookup(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockLocalities []models.Locality
		mockError      error
		expected       []models.Locality
		expectError    bool
		invalid        bool
	}{
		{
			name:        "empty query",
			query:       "   ",
			expectError: true,
			invalid:     true,
		},
		{
			name:           "successful search with results",
			query:          "Blacktown NSW",
			mockLocalities: []models.Locality{blacktown},
			expected:       []models.Locality{blacktown},
		},
		{
			name:           "successful search with no results",
			query:          "Atlantis",
			mockLocalities: []models.Locality{},
			expected:       []models.Locality{},
		},
		{
			name:        "repository error",
			query:       "Blacktown",
			mockError:   assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockLocalityRepository)
			service := NewLocalityService(mockRepo)

			if !tt.invalid {
				mockRepo.On("SearchLocalitiesByText", mock.Anything, tt.query, DefaultLookupLimit).Return(tt.mockLocalities, tt.mockError)
			}

			// Execute
			result, err := service.Lookup(context.Background(), tt.query)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidArgument))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLocalityService_Nearest(t *testing.T) {
	tests := []struct {
		name         string
		lat          float64
		lon          float64
		mockLocality *models.Locality
		mockError    error
		expected     *models.Locality
		expectError  bool
		invalid      bool
	}{
		{
			name:        "latitude out of range",
			lat:         -91,
			lon:         150.9,
			expectError: true,
			invalid:     true,
		},
		{
			name:        "longitude out of range",
			lat:         -33.77,
			lon:         181,
			expectError: true,
			invalid:     true,
		},
		{
			name:         "successful search with result",
			lat:          -33.7712,
			lon:          150.9061,
			mockLocality: &blacktown,
			expected:     &blacktown,
		},
		{
			name: "nothing within range",
			lat:  -40.0,
			lon:  130.0,
		},
		{
			name:        "repository error",
			lat:         -33.7712,
			lon:         150.9061,
			mockError:   assert.AnError,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockLocalityRepository)
			service := NewLocalityService(mockRepo)

			if !tt.invalid {
				mockRepo.On("FindNearestLocality", mock.Anything, tt.lat, tt.lon).Return(tt.mockLocality, tt.mockError)
			}

			// Execute
			result, err := service.Nearest(context.Background(), tt.lat, tt.lon)

			// Assert
			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidArgument))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
