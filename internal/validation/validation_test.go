package validation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sodam-app/sodam/internal/models"
)

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"21:00", true},
		{"00:00", true},
		{"23:59", true},
		{"24:00", false},
		{"9:00", false},
		{"21:60", false},
		{"", false},
		{"nine", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := TimeOfDay(tt.value)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFontName(t *testing.T) {
	assert.NoError(t, FontName("MapoGoldenPier"))
	assert.Error(t, FontName("Comic Sans"))
	assert.Error(t, FontName(""))
}

func TestStruct_Happiness(t *testing.T) {
	valid := models.Happiness{
		ID:         uuid.New().String(),
		HangdamID:  uuid.New().String(),
		Content:    "sunny walk",
		ImagePaths: []string{"images/a.jpg"},
		CreatedAt:  time.Now(),
	}
	require.NoError(t, Struct(valid))

	t.Run("content is optional", func(t *testing.T) {
		h := valid
		h.Content = ""
		assert.NoError(t, Struct(h))
	})

	t.Run("empty image path rejected", func(t *testing.T) {
		h := valid
		h.ImagePaths = []string{"images/a.jpg", ""}
		err := Struct(h)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ImagePaths")
	})

	t.Run("hangdam id must be a uuid", func(t *testing.T) {
		h := valid
		h.HangdamID = "not-a-uuid"
		err := Struct(h)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HangdamID must be a UUID")
	})
}
