package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/dmitrijs2005/caet/internal/dbx"
	"github.com/dmitrijs2005/caet/internal/logging"
	"github.com/dmitrijs2005/caet/internal/server/config"
	"github.com/dmitrijs2005/caet/internal/server/models"
	"github.com/dmitrijs2005/caet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/caet/internal/server/services"
	"github.com/dmitrijs2005/caet/internal/server/uploads"
	"github.com/stretchr/testify/require"
)

const testCSRF = "mock-csrf-token"

// recordingUsers is a UserService fake that counts every call reaching it.
type recordingUsers struct {
	calls int

	registerErr error
	loginToken  string
	loginErr    error
	authID      int64
	authErr     error
	profile     *models.Profile
	profileErr  error
	updateErr   error
	updatedID   int64
	updated     services.ProfileInput
}

func (f *recordingUsers) Register(ctx context.Context, in services.RegisterInput) (*models.User, error) {
	f.calls++
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: 1, Name: in.Name, Email: in.Email}, nil
}

func (f *recordingUsers) Login(ctx context.Context, email, password string) (string, error) {
	f.calls++
	return f.loginToken, f.loginErr
}

func (f *recordingUsers) ExternalLogin(ctx context.Context, externalToken string) (string, error) {
	f.calls++
	return f.loginToken, f.loginErr
}

func (f *recordingUsers) Authenticate(token string) (int64, error) {
	if token == "" {
		return 0, common.ErrNoSession
	}
	return f.authID, f.authErr
}

func (f *recordingUsers) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	f.calls++
	return f.profile, f.profileErr
}

func (f *recordingUsers) UpdateProfile(ctx context.Context, userID int64, in services.ProfileInput) error {
	f.calls++
	f.updatedID = userID
	f.updated = in
	return f.updateErr
}

func (f *recordingUsers) ForgotPassword(ctx context.Context, email string) error {
	f.calls++
	if email == "" {
		return common.ErrValidation
	}
	return nil
}

type recordingFiles struct {
	saved   map[string]string
	list    []models.FileInfo
	listErr error
	saveErr error
}

func (f *recordingFiles) Upload(ctx context.Context, name string, r io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	f.saved[name] = string(b)
	return nil
}

func (f *recordingFiles) List(ctx context.Context) ([]models.FileInfo, error) {
	return f.list, f.listErr
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func newFakeServer(us *recordingUsers, fs *recordingFiles) http.Handler {
	return NewHTTPServer(":0", logging.Discard(), us, fs, fakePinger{}, testCSRF).Handler()
}

// newRealServer wires real services over in-memory SQLite and a temp upload dir.
func newRealServer(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, rm.RunMigrations(ctx, db))

	cfg := &config.Config{}
	cfg.LoadDefaults()

	store, err := uploads.NewDirStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	us := services.NewUserService(db, rm, cfg, logging.Discard())
	fs := services.NewFileService(store, logging.Discard())
	return NewHTTPServer(":0", logging.Discard(), us, fs, db, cfg.CSRFToken).Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type uploadPart struct {
	name, content string
}

func doUpload(t *testing.T, h http.Handler, csrf string, parts ...uploadPart) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if csrf != "" {
		require.NoError(t, mw.WriteField(common.AntiForgeryFieldName, csrf))
	}
	for _, p := range parts {
		fw, err := mw.CreateFormFile("files", p.name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, p.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	return nil
}
