package geocode

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeResolvesAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "12 Riverside Drive, Nairobi", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"-1.2920659","lon":"36.8219462","display_name":"Riverside Drive, Nairobi, Kenya"}]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.URL)
	res, err := client.Geocode("12 Riverside Drive, Nairobi")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.InDelta(t, -1.2920659, res.Lat, 1e-9)
	assert.InDelta(t, 36.8219462, res.Lng, 1e-9)
	assert.Equal(t, "Riverside Drive, Nairobi, Kenya", res.DisplayName)
}

func TestGeocodeUnknownAddressIsNilNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	res, err := NewNominatimClient(srv.URL).Geocode("nowhere at all")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestGeocodeUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	res, err := NewNominatimClient(srv.URL).Geocode("anywhere")
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestGeocodeMalformedCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"not-a-number","lon":"36.8","display_name":"x"}]`))
	}))
	defer srv.Close()

	res, err := NewNominatimClient(srv.URL).Geocode("anywhere")
	assert.Nil(t, res)
	require.Error(t, err)
}
