package codec

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/mmcdole/showlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []domain.Show {
	return []domain.Show{
		{
			Title:       "Dexter",
			Description: domain.StringPtr("Blood spatter analyst"),
			Genres:      []string{"drama", "crime"},
			Rating:      domain.IntPtr(4),
		},
		{
			Title:  "The Wire",
			Genres: []string{},
		},
	}
}

func TestEncodeShows_WireShape(t *testing.T) {
	data, err := EncodeShows([]domain.Show{{Title: "Lost"}})
	require.NoError(t, err)

	assert.JSONEq(t,
		`[{"title":"Lost","description":null,"genres":[],"rating":null}]`,
		string(data))
}

func TestShows_RoundTrip(t *testing.T) {
	data, err := EncodeShows(sample())
	require.NoError(t, err)

	decoded, err := DecodeShows(data)
	require.NoError(t, err)

	assert.Equal(t, sample(), decoded)
}

func TestShows_RoundTripIgnoresGenreOrder(t *testing.T) {
	original := sample()
	data, err := EncodeShows(original)
	require.NoError(t, err)

	decoded, err := DecodeShows(data)
	require.NoError(t, err)

	for i := range original {
		want := slices.Sorted(slices.Values(original[i].Genres))
		got := slices.Sorted(slices.Values(decoded[i].Genres))
		assert.Equal(t, want, got)
	}
}

func TestDecodeShows_NullGenres(t *testing.T) {
	shows, err := DecodeShows([]byte(`[{"title":"Lost","description":null,"genres":null,"rating":2}]`))
	require.NoError(t, err)
	require.Len(t, shows, 1)

	assert.Equal(t, []string{}, shows[0].Genres)
	assert.Equal(t, 2, *shows[0].Rating)
	assert.Nil(t, shows[0].Description)
}

func TestDecodeShows_Malformed(t *testing.T) {
	_, err := DecodeShows([]byte(`{"title":`))
	assert.Error(t, err)
}

func TestBackup_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBackup(&buf, sample()))
	assert.True(t, strings.HasPrefix(buf.String(), `{"shows":[`))

	decoded, err := DecodeBackup(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample(), decoded)
}

func TestDecodeBackup_Empty(t *testing.T) {
	shows, err := DecodeBackup(strings.NewReader(`{"shows":[]}`))
	require.NoError(t, err)
	assert.Empty(t, shows)

	_, err = DecodeBackup(strings.NewReader(`not json`))
	assert.Error(t, err)
}
