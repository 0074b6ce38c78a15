package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"golang.org/x/crypto/bcrypt"

	"github.com/promanage/core/internal/adapters/repository"
	"github.com/promanage/core/internal/infrastructure/config"
	"github.com/promanage/core/internal/infrastructure/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "ProManage", Version: "test", Environment: "test"},
		Server:   config.ServerConfig{Port: 3000, RequestTimeout: 5 * time.Second},
		Database: config.DatabaseConfig{Driver: "memory"},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "promanage-test"},
		Security: config.SecurityConfig{CORSAllowedOrigins: "*", BcryptCost: bcrypt.MinCost},
		Metrics:  config.MetricsConfig{Enabled: true},
	}
}

type client struct {
	t   *testing.T
	srv *Server
}

func newClient(t *testing.T) *client {
	t.Helper()
	srv, err := New(testConfig(), repository.NewMemoryStore(), logger.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return &client{t: t, srv: srv}
}

// do sends a JSON request and decodes the JSON response into out when non-nil.
func (c *client) do(method, path, token string, body, out interface{}) int {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, req)

	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			c.t.Fatalf("decode %s %s response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

type authBody struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

type taskBody struct {
	Task struct {
		ID        string   `json:"id"`
		Title     string   `json:"title"`
		AssignTo  []string `json:"assignTo"`
		TaskType  string   `json:"taskType"`
		Checklist []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			Done  bool   `json:"done"`
		} `json:"checklist"`
	} `json:"task"`
}

type tasksBody struct {
	Tasks []struct {
		ID string `json:"id"`
	} `json:"tasks"`
}

type msgBody struct {
	Msg string `json:"msg"`
}

func (c *client) register(name, email string) authBody {
	c.t.Helper()
	var res authBody
	code := c.do(http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"name": name, "email": email, "password": "secret1", "confirmPassword": "secret1",
	}, &res)
	if code != http.StatusCreated {
		c.t.Fatalf("register %s: status %d", email, code)
	}
	return res
}

func TestUserRoutes(t *testing.T) {
	c := newClient(t)
	ann := c.register("Ann", "ann@x.com")
	c.register("Bob", "bob@x.com")

	t.Run("register rejects mismatch", func(t *testing.T) {
		is := is.New(t)
		var res msgBody
		code := c.do(http.MethodPost, "/api/v1/users/register", "", map[string]string{
			"name": "C", "email": "c@x.com", "password": "secret1", "confirmPassword": "secret2",
		}, &res)
		is.Equal(code, http.StatusBadRequest)
		is.Equal(res.Msg, "Passwords do not match")
	})

	t.Run("login", func(t *testing.T) {
		is := is.New(t)
		var res authBody
		code := c.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{
			"email": "ann@x.com", "password": "secret1",
		}, &res)
		is.Equal(code, http.StatusOK)
		is.Equal(res.User.ID, ann.User.ID)

		var bad msgBody
		code = c.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{
			"email": "ann@x.com", "password": "wrong-1",
		}, &bad)
		is.Equal(code, http.StatusUnauthorized)
		is.Equal(bad.Msg, "Incorrect email/password")
	})

	t.Run("logout", func(t *testing.T) {
		is := is.New(t)
		var res msgBody
		is.Equal(c.do(http.MethodGet, "/api/v1/users/logout", "", nil, &res), http.StatusOK)
		is.True(res.Msg != "")
	})

	t.Run("get user omits password", func(t *testing.T) {
		is := is.New(t)
		rec := httptest.NewRecorder()
		c.srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/"+ann.User.ID, nil))
		is.Equal(rec.Code, http.StatusOK)
		is.True(!strings.Contains(rec.Body.String(), "password"))

		var users struct {
			Users []map[string]interface{} `json:"users"`
		}
		is.Equal(c.do(http.MethodGet, "/api/v1/users", "", nil, &users), http.StatusOK)
		is.Equal(len(users.Users), 2)

		is.Equal(c.do(http.MethodGet, "/api/v1/users/ffffffffffffffffffffffff", "", nil, nil), http.StatusNotFound)
	})

	t.Run("group requires a token", func(t *testing.T) {
		is := is.New(t)
		path := "/api/v1/users/" + ann.User.ID + "/addPersonToGroup"
		is.Equal(c.do(http.MethodPatch, path, "", map[string]string{"email": "bob@x.com"}, nil), http.StatusUnauthorized)
		is.Equal(c.do(http.MethodPatch, path, "garbage", map[string]string{"email": "bob@x.com"}, nil), http.StatusUnauthorized)

		is.Equal(c.do(http.MethodPatch, path, ann.Token, map[string]string{"email": "bob@x.com"}, nil), http.StatusOK)
		is.Equal(c.do(http.MethodPatch, path, ann.Token, map[string]string{"email": "bob@x.com"}, nil), http.StatusBadRequest)

		var emails struct {
			Emails []string `json:"emails"`
		}
		is.Equal(c.do(http.MethodGet, "/api/v1/users/"+ann.User.ID+"/getEmailsForGroup", ann.Token, nil, &emails), http.StatusOK)
		is.Equal(emails.Emails, []string{"bob@x.com"})
	})

	t.Run("update user", func(t *testing.T) {
		is := is.New(t)
		var res struct {
			Message string `json:"message"`
		}
		code := c.do(http.MethodPatch, "/api/v1/users/updateUser/"+ann.User.ID, ann.Token, map[string]string{"name": "Anna"}, &res)
		is.Equal(code, http.StatusOK)
		is.Equal(res.Message, "User updated successfully")
	})
}

func TestTaskLifecycle(t *testing.T) {
	c := newClient(t)
	ann := c.register("Ann", "ann@x.com")
	bob := c.register("Bob", "bob@x.com")
	cid := c.register("Cid", "cid@x.com")

	var created taskBody
	code := c.do(http.MethodPost, "/api/v1/tasks/"+ann.User.ID+"/createTask", ann.Token, map[string]interface{}{
		"title":     "Write report",
		"priority":  "High",
		"assignNow": "bob@x.com",
		"checklist": []map[string]interface{}{{"title": "outline"}},
		"dueDate":   "2026-12-01",
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create task: status %d", code)
	}
	taskID := created.Task.ID

	t.Run("task is listed for creator and assignee", func(t *testing.T) {
		is := is.New(t)
		for _, u := range []authBody{ann, bob} {
			var list tasksBody
			is.Equal(c.do(http.MethodGet, "/api/v1/tasks/allTasks/"+u.User.ID, u.Token, nil, &list), http.StatusOK)
			is.Equal(len(list.Tasks), 1)
			is.Equal(list.Tasks[0].ID, taskID)
		}

		is.Equal(c.do(http.MethodGet, "/api/v1/tasks/allTasks/"+ann.User.ID, bob.Token, nil, nil), http.StatusForbidden)
	})

	t.Run("anyone can read by id", func(t *testing.T) {
		is := is.New(t)
		var got taskBody
		is.Equal(c.do(http.MethodGet, "/api/v1/tasks/"+taskID, "", nil, &got), http.StatusOK)
		is.Equal(got.Task.TaskType, "To do")
		is.Equal(got.Task.AssignTo, []string{bob.User.ID})
	})

	t.Run("change task type", func(t *testing.T) {
		is := is.New(t)
		body := map[string]string{"newTaskType": "In Progress"}
		is.Equal(c.do(http.MethodPatch, "/api/v1/tasks/changeTaskType/"+taskID, bob.Token, body, nil), http.StatusOK)
		is.Equal(c.do(http.MethodPatch, "/api/v1/tasks/changeTaskType/"+taskID, cid.Token, body, nil), http.StatusForbidden)

		is.Equal(c.do(http.MethodPatch, "/api/v1/tasks/changeTaskType/"+taskID, ann.Token, map[string]string{"newTaskType": "Someday"}, nil), http.StatusBadRequest)
	})

	t.Run("update task", func(t *testing.T) {
		is := is.New(t)
		var updated taskBody
		code := c.do(http.MethodPatch, "/api/v1/tasks/updateTask/"+taskID, ann.Token, map[string]interface{}{
			"title":     "Final report",
			"assignNow": "cid@x.com",
		}, &updated)
		is.Equal(code, http.StatusOK)
		is.Equal(updated.Task.Title, "Final report")
		is.Equal(updated.Task.AssignTo, []string{bob.User.ID, cid.User.ID})

		is.Equal(c.do(http.MethodPatch, "/api/v1/tasks/updateTask/"+taskID, bob.Token, map[string]string{"title": "x"}, nil), http.StatusForbidden)
		is.Equal(c.do(http.MethodPatch, "/api/v1/tasks/updateTask/"+taskID, ann.Token, map[string]interface{}{"checklist": []string{}}, nil), http.StatusBadRequest)
	})

	t.Run("assignee emails", func(t *testing.T) {
		is := is.New(t)
		var res struct {
			Emails []string `json:"emails"`
		}
		is.Equal(c.do(http.MethodGet, "/api/v1/tasks/getAssigneeEmailsByTask/"+taskID, ann.Token, nil, &res), http.StatusOK)
		is.Equal(res.Emails, []string{"bob@x.com", "cid@x.com"})
	})

	t.Run("sub task check", func(t *testing.T) {
		is := is.New(t)
		subID := created.Task.Checklist[0].ID
		var res struct {
			SubTask struct {
				ID   string `json:"id"`
				Done bool   `json:"done"`
			} `json:"subTask"`
		}
		body := map[string]interface{}{"subTaskId": subID, "subTaskDone": true}
		is.Equal(c.do(http.MethodPatch, "/api/v1/tasks/setSubTaskCheck/"+taskID, ann.Token, body, &res), http.StatusOK)
		is.Equal(res.SubTask.ID, subID)
		is.True(res.SubTask.Done)

		is.Equal(c.do(http.MethodPatch, "/api/v1/tasks/setSubTaskCheck/"+taskID, bob.Token, body, nil), http.StatusForbidden)
	})

	t.Run("status priority count", func(t *testing.T) {
		is := is.New(t)
		var counts map[string]int
		is.Equal(c.do(http.MethodGet, "/api/v1/tasks/"+ann.User.ID+"/getStatusPriorityCount", ann.Token, nil, &counts), http.StatusOK)
		is.Equal(counts["inProgress"], 1)
		is.Equal(counts["high"], 1)
		is.Equal(counts["dueDate"], 1)
	})

	t.Run("delete cascades", func(t *testing.T) {
		is := is.New(t)
		is.Equal(c.do(http.MethodDelete, "/api/v1/tasks/deleteTask/"+taskID, bob.Token, nil, nil), http.StatusForbidden)
		is.Equal(c.do(http.MethodDelete, "/api/v1/tasks/deleteTask/"+taskID, ann.Token, nil, nil), http.StatusOK)

		for _, u := range []authBody{ann, bob, cid} {
			var list tasksBody
			is.Equal(c.do(http.MethodGet, "/api/v1/tasks/allTasks/"+u.User.ID, u.Token, nil, &list), http.StatusOK)
			is.Equal(len(list.Tasks), 0)
		}

		var res msgBody
		is.Equal(c.do(http.MethodGet, "/api/v1/tasks/"+taskID, "", nil, &res), http.StatusNotFound)
		is.Equal(res.Msg, "Task not found")
	})
}

func TestOperationalRoutes(t *testing.T) {
	is := is.New(t)
	c := newClient(t)
	c.register("Ann", "ann@x.com")

	is.Equal(c.do(http.MethodGet, "/health", "", nil, nil), http.StatusOK)
	is.Equal(c.do(http.MethodGet, "/ready", "", nil, nil), http.StatusOK)

	var detailed struct {
		Status string `json:"status"`
	}
	is.Equal(c.do(http.MethodGet, "/health/detailed", "", nil, &detailed), http.StatusOK)
	is.Equal(detailed.Status, "ok")

	rec := httptest.NewRecorder()
	c.srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	is.Equal(rec.Code, http.StatusOK)
	is.True(strings.Contains(rec.Body.String(), "promanage_users_registered_total 1"))

	rec = httptest.NewRecorder()
	c.srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
	is.Equal(rec.Code, http.StatusNotFound)
}
