package report

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestFromValues(t *testing.T) {
	v := url.Values{
		"breed":     {" Chios "},
		"lact_from": {"2"},
		"lact_to":   {"x"},
		"year_from": {""},
		"min_days":  {"120"},
	}

	req := RequestFromValues(v)
	assert.Equal(t, "Chios", req.Breed)
	require.NotNil(t, req.LactFrom)
	assert.Equal(t, 2, *req.LactFrom)
	assert.Nil(t, req.LactTo, "non-integer is absent")
	assert.Nil(t, req.YearFrom)
	require.NotNil(t, req.MinDays)
	assert.Equal(t, 120, *req.MinDays)

	round := RequestFromValues(req.Values())
	assert.Equal(t, req, round)
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
		assert.NotEmpty(t, k.Title())
	}
	_, err := ParseKind("weekly")
	assert.Error(t, err)
}
