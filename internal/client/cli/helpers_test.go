package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/caet/internal/client/client"
	"github.com/dmitrijs2005/caet/internal/client/models"
	"github.com/dmitrijs2005/caet/internal/logging"
)

type uploaded struct {
	name string
	body string
}

// fakeClient records what the commands send and answers from its fields.
type fakeClient struct {
	calls []string

	pingErr   error
	err       error
	profile   *models.Profile
	files     []models.FileInfo
	forgotMsg string
	session   bool

	registered []string
	login      []string
	google     string
	updated    []string
	uploads    []uploaded
	forgot     string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Ping(context.Context) error {
	f.calls = append(f.calls, "ping")
	return f.pingErr
}

func (f *fakeClient) Register(_ context.Context, name, email, password, dob, phone string) error {
	f.calls = append(f.calls, "register")
	f.registered = []string{name, email, password, dob, phone}
	return f.err
}

func (f *fakeClient) Login(_ context.Context, email, password string) error {
	f.calls = append(f.calls, "login")
	f.login = []string{email, password}
	if f.err == nil {
		f.session = true
	}
	return f.err
}

func (f *fakeClient) GoogleLogin(_ context.Context, token string) error {
	f.calls = append(f.calls, "google")
	f.google = token
	if f.err == nil {
		f.session = true
	}
	return f.err
}

func (f *fakeClient) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.session = false
	return f.err
}

func (f *fakeClient) Profile(context.Context) (*models.Profile, error) {
	f.calls = append(f.calls, "profile")
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, name, phone, dob string) error {
	f.calls = append(f.calls, "update")
	f.updated = []string{name, phone, dob}
	return f.err
}

func (f *fakeClient) Files(context.Context) ([]models.FileInfo, error) {
	f.calls = append(f.calls, "files")
	return f.files, f.err
}

func (f *fakeClient) Upload(_ context.Context, files []client.Upload) error {
	f.calls = append(f.calls, "upload")
	for _, u := range files {
		b, _ := io.ReadAll(u.Body)
		f.uploads = append(f.uploads, uploaded{name: u.Name, body: string(b)})
	}
	return f.err
}

func (f *fakeClient) ForgotPassword(_ context.Context, email string) (string, error) {
	f.calls = append(f.calls, "forgot")
	f.forgot = email
	return f.forgotMsg, f.err
}

func (f *fakeClient) LoggedIn() bool { return f.session }

// newTestApp builds an App over fc that reads from input and logs into logs.
func newTestApp(fc *fakeClient, input string, logs *bytes.Buffer) *App {
	var logger logging.Logger = logging.Discard()
	if logs != nil {
		var err error
		logger, err = logging.NewJSONLogger(logs, "debug")
		if err != nil {
			panic(err)
		}
	}
	return &App{
		api:    fc,
		logger: logger,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    io.Discard,
	}
}

// stubAnswers replaces the prompt seams with a queue of answers, shared by
// text and password prompts in the order they are asked. An empty answer to
// a defaulted prompt keeps the current value.
func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	origST, origGP, origGD := getSimpleText, getPassword, getDefaultText

	next := func() (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next() }
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		s, err := next()
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	getDefaultText = func(_ *bufio.Reader, _ string, current string, _ io.Writer) (string, error) {
		s, err := next()
		if err != nil || s != "" {
			return s, err
		}
		return current, nil
	}

	t.Cleanup(func() {
		getSimpleText, getPassword, getDefaultText = origST, origGP, origGD
	})
}
