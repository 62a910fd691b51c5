package envelope_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/fleetbattle-console/internal/envelope"
	"github.com/mcoot/fleetbattle-console/internal/model"
)

func TestListShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare array", `[{"id":1},{"id":2}]`},
		{"data", `{"data":[{"id":1},{"id":2}]}`},
		{"items", `{"items":[{"id":1},{"id":2}],"total":2}`},
		{"named field", `{"levels":[{"id":1},{"id":2}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels, err := envelope.List[model.Level]([]byte(tt.body), "levels")
			require.NoError(t, err)
			require.Len(t, levels, 2)
			assert.Equal(t, model.ID("1"), levels[0].ID)
			assert.Equal(t, model.ID("2"), levels[1].ID)
		})
	}
}

func TestListToleratesZonelessTimestamps(t *testing.T) {
	body := `{"data":[{"userId":1,"createdAt":"2025-01-15T10:30:00.123"},{"userId":2}]}`

	users, err := envelope.List[model.User]([]byte(body), "users")
	require.NoError(t, err)
	require.Len(t, users, 2)
	want := time.Date(2025, 1, 15, 10, 30, 0, 123000000, time.UTC)
	assert.True(t, want.Equal(users[0].CreatedAt.Time), "got %v", users[0].CreatedAt.Time)
	assert.True(t, users[1].CreatedAt.IsZero())
}

func TestListPrefersDataOverNamedField(t *testing.T) {
	body := `{"data":[{"id":1}],"levels":[{"id":7},{"id":8}]}`

	levels, err := envelope.List[model.Level]([]byte(body), "levels")
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, model.ID("1"), levels[0].ID)
}

func TestListSkipsNonArrayData(t *testing.T) {
	body := `{"data":{"page":1},"users":[{"userId":3}]}`

	users, err := envelope.List[model.User]([]byte(body), "users")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.ID("3"), users[0].ID)
}

func TestListEmpty(t *testing.T) {
	levels, err := envelope.List[model.Level](nil, "levels")
	require.NoError(t, err)
	assert.Empty(t, levels)

	levels, err = envelope.List[model.Level]([]byte(`{"data":[]}`), "levels")
	require.NoError(t, err)
	assert.NotNil(t, levels)
	assert.Empty(t, levels)
}

func TestListUnrecognized(t *testing.T) {
	for _, body := range []string{`{"levels":"nope"}`, `{"other":[1]}`, `"text"`, `not json`} {
		_, err := envelope.List[model.Level]([]byte(body), "levels")
		assert.ErrorIs(t, err, envelope.ErrUnrecognizedEnvelope, body)
	}
}

func TestObject(t *testing.T) {
	user, err := envelope.Object[model.User]([]byte(`{"data":{"userId":5,"username":"bob"}}`))
	require.NoError(t, err)
	assert.Equal(t, model.ID("5"), user.ID)
	assert.Equal(t, "bob", user.Username)

	user, err = envelope.Object[model.User]([]byte(`{"id":6,"username":"eve"}`))
	require.NoError(t, err)
	assert.Equal(t, model.ID("6"), user.ID)
}
