package syncserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/remote"
	"github.com/mmcdole/showlist/internal/store"
	"github.com/mmcdole/showlist/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, tokens ...string) *Server {
	t.Helper()
	st, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewServer(st, tokens, nil)
}

func do(s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := do(s, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestAuth(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := do(s, http.MethodGet, "/api/v1/backup", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Missing authorization header", errorMessage(t, rec))

	rec = do(s, http.MethodGet, "/api/v1/backup", "wrong", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/backup", nil)
	req.Header.Set("Authorization", "Basic secret")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(s, http.MethodGet, "/api/v1/backup", "secret", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOpenServerAcceptsAnyToken(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/api/v1/backup", "anything", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(s, http.MethodGet, "/api/v1/backup", "", "").Code)
}

func TestPutThenGet(t *testing.T) {
	s := newTestServer(t)
	doc := `{"shows":[{"title":"Dexter","description":null,"genres":["drama"],"rating":4}]}`

	rec := do(s, http.MethodPut, "/api/v1/backup", "alice", doc)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, http.MethodGet, "/api/v1/backup", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, doc, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Last-Modified"))

	rec = do(s, http.MethodGet, "/api/v1/backup", "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "tokens do not share backups")
}

func TestPutRejectsInvalidDocuments(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodPut, "/api/v1/backup", "alice", `{"shows":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(s, http.MethodPut, "/api/v1/backup", "alice", `{"shows":[{"title":"  ","genres":[]}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, errorMessage(t, rec), validation.MsgBlankTitle)

	rec = do(s, http.MethodPut, "/api/v1/backup", "alice", `{"shows":[{"title":"A","genres":[]},{"title":"A","genres":[]}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, errorMessage(t, rec), validation.MsgDuplicateTitle)

	rec = do(s, http.MethodPut, "/api/v1/backup", "alice", `{"shows":[{"title":"A","genres":[],"rating":7}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	assert.Equal(t, http.StatusNotFound, do(s, http.MethodGet, "/api/v1/backup", "alice", "").Code)
}

func TestRemoteClientRoundTrip(t *testing.T) {
	ts := httptest.NewServer(newTestServer(t, "secret"))
	defer ts.Close()

	client := remote.NewClient(ts.URL, nil)
	ctx := context.Background()

	shows, err := client.FetchBackup(ctx, "secret")
	require.NoError(t, err)
	assert.Empty(t, shows)

	want := []domain.Show{
		{Title: "Dexter", Genres: []string{"drama", "crime"}, Rating: domain.IntPtr(4)},
		{Title: "Archer", Description: domain.StringPtr("Spy comedy"), Genres: []string{}},
	}
	require.NoError(t, client.PushBackup(ctx, "secret", want))

	got, err := client.FetchBackup(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.ErrorIs(t, client.Verify(ctx, "nope"), domain.ErrAuthFailed)
	assert.ErrorIs(t, client.Verify(ctx, ""), domain.ErrNoSession)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}
