package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boardmates/internal/database"
	"boardmates/internal/model"
	"boardmates/internal/service"
	"boardmates/internal/session"
	"boardmates/internal/store"
	"boardmates/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newJSONCtx(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restore() {
	hashPassword = service.HashPassword
	comparePassword = service.ComparePassword
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
	touchLastLogin = store.TouchLastLogin
}

func noRows() error { return pgx.ErrNoRows }

func TestRegisterHandler(t *testing.T) {
	e := echo.New()

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/register", "{")
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid request body")
	})

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("username is required")}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/register", `{"email":"a@b.com"}`)
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "username is required")
	})

	t.Run("invalid type", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/register",
			`{"username":"a","email":"a@b.com","password":"p","type":"wizard"}`)
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid user type")
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1}, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/register",
			`{"username":"a","email":"a@b.com","password":"p"}`)
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "email already exists")
	})

	t.Run("lookup failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, errors.New("db down")
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/register",
			`{"username":"a","email":"a@b.com","password":"p"}`)
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("hash error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, noRows()
		}
		hashPassword = func(string) (string, error) { return "", errors.New("hash") }
		ctx, rec := newJSONCtx(e, http.MethodPost, "/register",
			`{"username":"a","email":"a@b.com","password":"p"}`)
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success defaults type and lowercases email", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, noRows()
		}
		hashPassword = func(p string) (string, error) { require.Equal(t, "p", p); return "digest", nil }
		var created *model.User
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			created = u
			u.ID = 42
			u.Active = true
			return u, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/register",
			`{"username":"Alice","email":"Alice@EXAMPLE.com","password":"p"}`)
		require.NoError(t, RegisterHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "alice@example.com", created.Email)
		require.Equal(t, model.TypeUser, created.Type)
		require.Equal(t, "digest", created.PasswordHash)
		require.Contains(t, rec.Body.String(), `"id":42`)
		require.Contains(t, rec.Body.String(), `"active":true`)
	})
}

func TestLoginHandler(t *testing.T) {
	e := echo.New()
	t.Setenv("COOKIE_SECRET", testSecret)

	sessions := &session.FakeStore{
		CreateFn: func(context.Context, session.Data) (string, error) { return "sid123", nil },
	}

	t.Run("unknown email and bad password share one message", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return nil, noRows()
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/login", `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, LoginHandler(nil, sessions)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), wrongCredentials)
		noEmailBody := rec.Body.String()

		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHash: "digest"}, nil
		}
		comparePassword = func(string, string) error { return errors.New("mismatch") }
		ctx, rec = newJSONCtx(e, http.MethodPost, "/login", `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, LoginHandler(nil, sessions)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, noEmailBody, rec.Body.String())
	})

	t.Run("touch failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHash: "digest"}, nil
		}
		comparePassword = func(string, string) error { return nil }
		touchLastLogin = func(context.Context, database.DB, int) error { return errors.New("db") }
		ctx, rec := newJSONCtx(e, http.MethodPost, "/login", `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, LoginHandler(nil, sessions)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("session create failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1, PasswordHash: "digest"}, nil
		}
		comparePassword = func(string, string) error { return nil }
		touchLastLogin = func(context.Context, database.DB, int) error { return nil }
		bad := &session.FakeStore{
			CreateFn: func(context.Context, session.Data) (string, error) { return "", errors.New("redis") },
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/login", `{"email":"a@b.com","password":"p"}`)
		require.NoError(t, LoginHandler(nil, bad)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success sets cookie", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
			require.Equal(t, "alice@example.com", email)
			return &model.User{ID: 7, Username: "alice", PasswordHash: "digest", Type: "user"}, nil
		}
		comparePassword = func(hash, pwd string) error {
			require.Equal(t, "digest", hash)
			require.Equal(t, "p", pwd)
			return nil
		}
		touched := 0
		touchLastLogin = func(_ context.Context, _ database.DB, id int) error {
			touched = id
			return nil
		}
		var sessData session.Data
		ok := &session.FakeStore{
			CreateFn: func(_ context.Context, d session.Data) (string, error) {
				sessData = d
				return "sid123", nil
			},
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, "/login", `{"email":"Alice@Example.com","password":"p"}`)
		require.NoError(t, LoginHandler(nil, ok)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 7, touched)
		require.Equal(t, session.Data{UserID: 7, Username: "alice", Type: "user"}, sessData)
		require.Contains(t, rec.Body.String(), `"username":"alice"`)
		require.Contains(t, rec.Body.String(), `"id":7`)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, session.CookieName, cookies[0].Name)
		sid, err := session.VerifySID(cookies[0].Value)
		require.NoError(t, err)
		require.Equal(t, "sid123", sid)
	})
}

func TestLogoutHandler(t *testing.T) {
	e := echo.New()
	t.Setenv("COOKIE_SECRET", testSecret)

	newLogoutCtx := func(cookieValue string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		if cookieValue != "" {
			req.AddCookie(&http.Cookie{Name: session.CookieName, Value: cookieValue})
		}
		rec := httptest.NewRecorder()
		return e.NewContext(req, rec), rec
	}

	t.Run("no cookie just redirects", func(t *testing.T) {
		ctx, rec := newLogoutCtx("")
		wp := worker.NewPool(1)
		defer wp.Stop()
		require.NoError(t, LogoutHandler(nil, &session.FakeStore{}, wp)(ctx))
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("tampered cookie expires it and redirects", func(t *testing.T) {
		ctx, rec := newLogoutCtx("bogus")
		wp := worker.NewPool(1)
		defer wp.Stop()
		require.NoError(t, LogoutHandler(nil, &session.FakeStore{}, wp)(ctx))
		require.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("destroy failure is a 500", func(t *testing.T) {
		t.Cleanup(restore)
		tok, err := session.SignSID("sid123")
		require.NoError(t, err)
		touchLastLogin = func(context.Context, database.DB, int) error { return nil }
		sessions := &session.FakeStore{
			GetFn:    func(context.Context, string) (*session.Data, error) { return nil, session.ErrNotFound },
			DeleteFn: func(context.Context, string) error { return errors.New("redis") },
		}
		ctx, rec := newLogoutCtx(tok)
		wp := worker.NewPool(1)
		defer wp.Stop()
		require.NoError(t, LogoutHandler(nil, sessions, wp)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "failed to destroy session")
	})

	t.Run("success touches last_login and destroys the session", func(t *testing.T) {
		t.Cleanup(restore)
		tok, err := session.SignSID("sid123")
		require.NoError(t, err)

		touched := make(chan int, 1)
		touchLastLogin = func(_ context.Context, _ database.DB, id int) error {
			touched <- id
			return nil
		}
		var deletedSID string
		sessions := &session.FakeStore{
			GetFn: func(context.Context, string) (*session.Data, error) {
				return &session.Data{UserID: 9, Username: "z", Type: "user"}, nil
			},
			DeleteFn: func(_ context.Context, sid string) error {
				deletedSID = sid
				return nil
			},
		}
		ctx, rec := newLogoutCtx(tok)
		wp := worker.NewPool(1)
		require.NoError(t, LogoutHandler(nil, sessions, wp)(ctx))
		wp.Stop()

		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		require.Equal(t, "sid123", deletedSID)
		require.Equal(t, 9, <-touched)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, -1, cookies[0].MaxAge)
	})
}
