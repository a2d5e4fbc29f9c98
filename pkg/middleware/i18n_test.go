package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/fkunand/faculty-admin/pkg/intl"
)

type localeApp struct {
	bundle    *i18n.Bundle
	languages []string
}

func (a localeApp) Bundle() *i18n.Bundle            { return a.bundle }
func (a localeApp) GetSupportedLanguages() []string { return a.languages }

func serveLocale(t *testing.T, app Application, req *http.Request) (language.Tag, string) {
	t.Helper()
	var (
		tag  language.Tag
		text string
	)
	h := ProvideLocalizer(app)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		tag, ok = intl.UseLocale(r.Context())
		require.True(t, ok)
		l, ok := intl.UseLocalizer(r.Context())
		require.True(t, ok)
		text = intl.T(l, "Import.Errors.EmptyFile", nil)
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return tag, text
}

func TestProvideLocalizer(t *testing.T) {
	t.Parallel()

	app := localeApp{bundle: intl.NewBundle(), languages: []string{"id", "en"}}
	cases := []struct {
		name   string
		header string
		query  string
		want   language.Tag
		text   string
	}{
		{name: "no header", want: language.Indonesian, text: "File kosong"},
		{name: "english", header: "en-US,en;q=0.9", want: language.English, text: "file is empty"},
		{name: "unsupported", header: "fr-FR", want: language.Indonesian, text: "File kosong"},
		{name: "query wins", header: "en", query: "?lang=id", want: language.Indonesian, text: "File kosong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/faculty/api/members"+tc.query, nil)
			if tc.header != "" {
				req.Header.Set("Accept-Language", tc.header)
			}
			tag, text := serveLocale(t, app, req)
			base, _ := tag.Base()
			want, _ := tc.want.Base()
			assert.Equal(t, want, base)
			assert.Equal(t, tc.text, text)
		})
	}
}

func TestProvideLocalizer_Whitelist(t *testing.T) {
	t.Parallel()

	app := localeApp{bundle: intl.NewBundle(), languages: []string{"en"}}
	req := httptest.NewRequest(http.MethodGet, "/faculty/api/members", nil)
	tag, text := serveLocale(t, app, req)
	base, _ := tag.Base()
	want, _ := language.English.Base()
	assert.Equal(t, want, base)
	assert.Equal(t, "file is empty", text)
}
