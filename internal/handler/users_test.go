package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/oncereply/b3log-solo/internal/i18n"
	"github.com/oncereply/b3log-solo/internal/model"
	"github.com/oncereply/b3log-solo/internal/service"
	"github.com/oncereply/b3log-solo/internal/testutil"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newUserConsole(t *testing.T) (*service.UserService, http.Handler) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	users := service.NewUserService(db, testutil.TestLoggerSilent())
	h := NewUserConsoleHandler(users, testutil.TestLoggerSilent())

	r := chi.NewRouter()
	r.Post("/console/user", h.Add)
	r.Put("/console/user", h.Update)
	r.Delete("/console/user/{id}", h.Remove)
	r.Get("/console/user/{id}", h.Get)
	r.Get("/console/users/{page}/{size}/{window}", h.List)
	return users, r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, resp
}

func TestConsoleAddUser(t *testing.T) {
	users, h := newUserConsole(t)

	rec, resp := doJSON(t, h, http.MethodPost, "/console/user", map[string]any{
		"userName":     "Daniel",
		"userEmail":    "daniel@example.com",
		"userPassword": "secret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp["statusCode"] != true {
		t.Fatalf("statusCode = %v, body %v", resp["statusCode"], resp)
	}
	if resp["msg"] != "Added successfully" {
		t.Errorf("msg = %v", resp["msg"])
	}

	id, _ := resp["oId"].(string)
	if id == "" {
		t.Fatal("response missing oId")
	}

	u, err := users.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Role != model.RoleDefault {
		t.Errorf("role = %q", u.Role)
	}
}

func TestConsoleAddDuplicateEmail(t *testing.T) {
	_, h := newUserConsole(t)

	body := map[string]any{
		"userName": "a", "userEmail": "a@example.com", "userPassword": "pw",
	}
	if _, resp := doJSON(t, h, http.MethodPost, "/console/user", body); resp["statusCode"] != true {
		t.Fatalf("first add failed: %v", resp)
	}

	_, resp := doJSON(t, h, http.MethodPost, "/console/user", body)
	if resp["statusCode"] != false {
		t.Errorf("statusCode = %v, want false", resp["statusCode"])
	}
	if resp["msg"] != "Duplicated email" {
		t.Errorf("msg = %v", resp["msg"])
	}
}

func TestConsoleAddMalformedBody(t *testing.T) {
	_, h := newUserConsole(t)

	req := httptest.NewRequest(http.MethodPost, "/console/user", bytes.NewBufferString("{oops"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	if resp["statusCode"] != false {
		t.Errorf("statusCode = %v, want false", resp["statusCode"])
	}
}

func TestConsoleUpdateUser(t *testing.T) {
	users, h := newUserConsole(t)

	id, err := users.Add(context.Background(), service.AddUserParams{
		Name: "a", Email: "a@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, resp := doJSON(t, h, http.MethodPut, "/console/user", map[string]any{
		"oId":          id,
		"userName":     "Renamed",
		"userEmail":    "renamed@example.com",
		"userPassword": "pw2",
	})
	if resp["statusCode"] != true {
		t.Fatalf("statusCode = %v, body %v", resp["statusCode"], resp)
	}
	if resp["msg"] != "Updated successfully" {
		t.Errorf("msg = %v", resp["msg"])
	}

	u, err := users.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if u.Name != "Renamed" || u.Email != "renamed@example.com" {
		t.Errorf("user = %+v", u)
	}
}

func TestConsoleUpdateMissingUser(t *testing.T) {
	_, h := newUserConsole(t)

	_, resp := doJSON(t, h, http.MethodPut, "/console/user", map[string]any{
		"oId": "missing", "userName": "a", "userEmail": "a@example.com", "userPassword": "pw",
	})
	if resp["statusCode"] != false {
		t.Errorf("statusCode = %v, want false", resp["statusCode"])
	}
	if resp["msg"] != "Update failed" {
		t.Errorf("msg = %v", resp["msg"])
	}
}

func TestConsoleRemoveUser(t *testing.T) {
	users, h := newUserConsole(t)

	id, err := users.Add(context.Background(), service.AddUserParams{
		Name: "a", Email: "a@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, resp := doJSON(t, h, http.MethodDelete, "/console/user/"+id, nil)
	if resp["statusCode"] != true || resp["msg"] != "Removed successfully" {
		t.Errorf("response = %v", resp)
	}

	// Removing an unknown id still reports success.
	_, resp = doJSON(t, h, http.MethodDelete, "/console/user/missing", nil)
	if resp["statusCode"] != true {
		t.Errorf("response = %v", resp)
	}
}

func TestConsoleGetUser(t *testing.T) {
	users, h := newUserConsole(t)

	id, err := users.Add(context.Background(), service.AddUserParams{
		Name: "Daniel", Email: "daniel@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, resp := doJSON(t, h, http.MethodGet, "/console/user/"+id, nil)
	if resp["statusCode"] != true {
		t.Fatalf("response = %v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("user field = %T", resp["user"])
	}
	if user["userEmail"] != "daniel@example.com" || user["userName"] != "Daniel" {
		t.Errorf("user = %v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("password hash leaked into the console response")
	}

	_, resp = doJSON(t, h, http.MethodGet, "/console/user/missing", nil)
	if resp["statusCode"] != false || resp["msg"] != "Get failed" {
		t.Errorf("response = %v", resp)
	}
}

func TestConsoleListUsers(t *testing.T) {
	users, h := newUserConsole(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := users.Add(ctx, service.AddUserParams{
			Name: name, Email: name + "@example.com", Password: "pw",
		}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	_, resp := doJSON(t, h, http.MethodGet, "/console/users/1/2/10", nil)
	if resp["statusCode"] != true {
		t.Fatalf("response = %v", resp)
	}

	pagination, ok := resp["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("pagination field = %T", resp["pagination"])
	}
	if pagination["paginationPageCount"] != float64(2) {
		t.Errorf("paginationPageCount = %v", pagination["paginationPageCount"])
	}
	nums, _ := pagination["paginationPageNums"].([]any)
	if len(nums) != 2 {
		t.Errorf("paginationPageNums = %v", nums)
	}

	list, _ := resp["users"].([]any)
	if len(list) != 2 {
		t.Errorf("users page length = %d, want 2", len(list))
	}
}

func TestConsoleListUsersEmpty(t *testing.T) {
	_, h := newUserConsole(t)

	_, resp := doJSON(t, h, http.MethodGet, "/console/users/1/10/10", nil)
	if resp["statusCode"] != true {
		t.Fatalf("response = %v", resp)
	}
	if _, ok := resp["users"].([]any); !ok {
		t.Errorf("users should be an empty array, got %T", resp["users"])
	}
}

func TestConsoleLocalizedMessages(t *testing.T) {
	_, h := newUserConsole(t)

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(map[string]any{
		"userName": "a", "userEmail": "a@example.com", "userPassword": "pw",
	})
	req := httptest.NewRequest(http.MethodPost, "/console/user", &buf)
	req.Header.Set("Accept-Language", "zh-CN")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp["msg"] == "Added successfully" {
		t.Error("Accept-Language: zh-CN should localize the message")
	}
}
