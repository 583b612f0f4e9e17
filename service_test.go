package risc

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/lastwall-public/risc-go/auth"
	"github.com/lastwall-public/risc-go/common"
	"github.com/lastwall-public/risc-go/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEndpointURI = &url.URL{
	Scheme: "http",
	Host:   "risc.example",
	Path:   "/api/",
}

type testExchange struct {
	method string
	path   string
	form   url.Values
}

// newTestService returns a Service whose requests are recorded in ex and
// answered with the given status and body.
func newTestService(t *testing.T, code int, body string, ex *testExchange) (*Service, func()) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		f, err := url.ParseQuery(string(raw))
		require.NoError(t, err)

		ex.method = r.Method
		ex.path = r.URL.Path
		ex.form = f

		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	})

	client, teardown := common.NewTestingHTTPClient(h, &auth.BasicAuthenticator{Token: "tok_1234", Secret: "s3cr3t"})

	return &Service{
		Client:      client,
		EndPointURI: testEndpointURI,
		Token:       "tok_1234",
		Secret:      "s3cr3t",
	}, teardown
}

func TestService_NewService(t *testing.T) {
	s, err := NewService("tok_1234", "s3cr3t", auth.MethodBasic, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURI, s.EndPointURI.String())
	assert.IsType(t, &auth.BasicAuthenticator{}, s.Client.Auth)

	s, err = NewService("tok_1234", "s3cr3t", auth.MethodDigest, "https://risc.example:9999/api")
	require.NoError(t, err)
	assert.Equal(t, "https://risc.example:9999/api/", s.EndPointURI.String())
	assert.IsType(t, &auth.DigestAuthenticator{}, s.Client.Auth)

	_, err = NewService("tok_1234", "", auth.MethodBasic, "")
	assert.EqualError(t, err, "missing secret")

	_, err = NewService("tok_1234", "s3cr3t", "oauth2", "")
	assert.EqualError(t, err, `unexpected Method "oauth2"`)

	_, err = NewService("tok_1234", "s3cr3t", auth.MethodBasic, "risc.example")
	assert.EqualError(t, err, `URI is not absolute: "risc.example"`)
}

func TestService_SetClient(t *testing.T) {
	s, err := NewService("tok_1234", "s3cr3t", auth.MethodBasic, "")
	require.NoError(t, err)

	err = s.SetClient(nil)
	assert.EqualError(t, err, "no client supplied")

	err = s.SetClient(common.NewClient(nil))
	assert.NoError(t, err)
}

func TestService_unconfigured(t *testing.T) {
	var s Service

	_, err := s.Verify()
	assert.EqualError(t, err, "no client supplied")

	s.Client = common.NewClient(nil)
	_, err = s.Verify()
	assert.EqualError(t, err, "no endpoint URI")
}

func TestService_ScriptURL(t *testing.T) {
	s, err := NewService("tok_1234", "s3cr3t", auth.MethodBasic, "https://risc.lastwall.com")
	require.NoError(t, err)

	assert.Equal(t, "https://risc.lastwall.com/risc/script/tok_1234/", s.ScriptURL())
}

func TestService_Verify(t *testing.T) {
	var ex testExchange
	s, teardown := newTestService(t, http.StatusOK, `{"status":"OK"}`, &ex)
	defer teardown()

	res, err := s.Verify()
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "OK", res.Status())

	assert.Equal(t, http.MethodGet, ex.method)
	assert.Equal(t, "/api/verify", ex.path)
	assert.Empty(t, ex.form)
}

func TestService_operations(t *testing.T) {
	tvs := []struct {
		desc   string
		call   func(s *Service) (*common.Response, error)
		method string
		path   string
		form   url.Values
	}{
		{
			"create user without name",
			func(s *Service) (*common.Response, error) { return s.CreateUser("u1", "u1@example.com", "+15555550100", "") },
			http.MethodPost, "/api/users",
			url.Values{"user_id": {"u1"}, "email": {"u1@example.com"}, "phone": {"+15555550100"}},
		},
		{
			"create user with name",
			func(s *Service) (*common.Response, error) {
				return s.CreateUser("u1", "u1@example.com", "+15555550100", "User One")
			},
			http.MethodPost, "/api/users",
			url.Values{"user_id": {"u1"}, "email": {"u1@example.com"}, "phone": {"+15555550100"}, "name": {"User One"}},
		},
		{
			"get user",
			func(s *Service) (*common.Response, error) { return s.GetUser("u1") },
			http.MethodGet, "/api/users",
			url.Values{"user_id": {"u1"}},
		},
		{
			"update user phone only",
			func(s *Service) (*common.Response, error) { return s.UpdateUser("u1", "", "+15555550199", "") },
			http.MethodPut, "/api/users",
			url.Values{"user_id": {"u1"}, "phone": {"+15555550199"}},
		},
		{
			"delete user",
			func(s *Service) (*common.Response, error) { return s.DeleteUser("u1") },
			http.MethodDelete, "/api/users",
			url.Values{"user_id": {"u1"}},
		},
		{
			"create session",
			func(s *Service) (*common.Response, error) { return s.CreateSession("u1") },
			http.MethodPost, "/api/sessions",
			url.Values{"user_id": {"u1"}},
		},
		{
			"get session",
			func(s *Service) (*common.Response, error) { return s.GetSession("s1") },
			http.MethodGet, "/api/sessions",
			url.Values{"session_id": {"s1"}},
		},
	}

	for _, tv := range tvs {
		t.Run(tv.desc, func(t *testing.T) {
			var ex testExchange
			s, teardown := newTestService(t, http.StatusOK, `{"status":"OK"}`, &ex)
			defer teardown()

			res, err := tv.call(s)
			require.NoError(t, err)
			assert.True(t, res.OK())

			assert.Equal(t, tv.method, ex.method)
			assert.Equal(t, tv.path, ex.path)
			assert.Equal(t, tv.form, ex.form)
		})
	}
}

func TestService_CreateUser_key_count(t *testing.T) {
	var ex testExchange
	s, teardown := newTestService(t, http.StatusOK, `{}`, &ex)
	defer teardown()

	_, err := s.CreateUser("u1", "u1@example.com", "+15555550100", "")
	require.NoError(t, err)
	assert.Len(t, ex.form, 3)

	_, err = s.CreateUser("u1", "u1@example.com", "+15555550100", "User One")
	require.NoError(t, err)
	assert.Len(t, ex.form, 4)
}

func TestService_missing_arguments(t *testing.T) {
	s, err := NewService("tok_1234", "s3cr3t", auth.MethodBasic, "")
	require.NoError(t, err)

	_, err = s.CreateUser("", "e", "p", "")
	assert.EqualError(t, err, "no user id supplied")

	_, err = s.CreateUser("u1", "", "p", "")
	assert.EqualError(t, err, "no email supplied")

	_, err = s.CreateUser("u1", "e", "", "")
	assert.EqualError(t, err, "no phone supplied")

	_, err = s.GetUser("")
	assert.EqualError(t, err, "no user id supplied")

	_, err = s.UpdateUser("", "e", "", "")
	assert.EqualError(t, err, "no user id supplied")

	_, err = s.DeleteUser("")
	assert.EqualError(t, err, "no user id supplied")

	_, err = s.CreateSession("")
	assert.EqualError(t, err, "no user id supplied")

	_, err = s.GetSession("")
	assert.EqualError(t, err, "no session id supplied")

	_, err = s.ValidateSnapshot(nil)
	assert.EqualError(t, err, "no snapshot supplied")
}

func TestService_error_responses(t *testing.T) {
	var ex testExchange
	s, teardown := newTestService(t, http.StatusOK, `{"status":"Error","error":"bad_token"}`, &ex)
	defer teardown()

	res, err := s.Verify()
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "bad_token", res.Error())
	assert.Equal(t, "Error", res.Status())
}

func TestService_ValidateSnapshot(t *testing.T) {
	var ex testExchange
	s, teardown := newTestService(t, http.StatusOK, `{"status":"OK"}`, &ex)
	defer teardown()

	snap := &snapshot.Snapshot{
		SnapshotID: "snap-1",
		BrowserID:  "br-9",
		Date:       "2023-11-14T22:13:20Z",
		Score:      json.Number("87"),
		Status:     snapshot.StatusRisky,
		Risky:      true,
	}

	res, err := s.ValidateSnapshot(snap)
	require.NoError(t, err)
	assert.True(t, res.OK())

	assert.Equal(t, http.MethodGet, ex.method)
	assert.Equal(t, "/api/validate", ex.path)
	assert.Equal(t, url.Values{
		"snapshot_id": {"snap-1"},
		"browser_id":  {"br-9"},
		"date":        {"2023-11-14T22:13:20Z"},
		"score":       {"87"},
		"status":      {"risky"},
	}, ex.form)
}

func TestService_DecryptSnapshot(t *testing.T) {
	s := &Service{Secret: "4f3c2a1b0e9d8c7b6a5f4e3d2c1b0a99"}

	raw := `{"ix":10,"iv":"000102030405060708090a0b0c0d0e0f","data":"` +
		"fgPnov7JM48NU+bwYGH9K+KJBx9ZA5NkMKnkL/qGX9bVcZmUHq3dJWmv/clLG4Bs" +
		"3kMMoTdNGnp07SvQ+qHg7OC71cSrTIMDG+rIXT2LaBdfnfrpwXyySPhxwP851UoJ" +
		"jQijrxNdJDDWV44BIpv1Dg==" + `"}`

	snap, err := s.DecryptSnapshot([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, snapshot.Text("snap-1"), snap.SnapshotID)
	assert.True(t, snap.Risky)

	_, err = s.DecryptSnapshot([]byte(`{`))
	assert.ErrorIs(t, err, snapshot.ErrMalformedEnvelope)
}
