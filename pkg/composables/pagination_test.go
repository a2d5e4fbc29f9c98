package composables

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaginationFromQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/faculty/api/members?page=3&limit=10", nil)
	p := paginationFromQuery(r, 25, 100)
	require.Equal(t, 10, p.Limit)
	require.Equal(t, 20, p.Offset)
	require.Equal(t, 3, p.Page)
}

func TestPaginationFromQuery_ClampsAndDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/faculty/api/members?limit=5000&page=-1", nil)
	p := paginationFromQuery(r, 25, 100)
	require.Equal(t, 100, p.Limit)
	require.Equal(t, 0, p.Offset)
	require.Equal(t, 1, p.Page)

	r = httptest.NewRequest("GET", "/faculty/api/members", nil)
	p = paginationFromQuery(r, 25, 100)
	require.Equal(t, 25, p.Limit)
}
