package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rchttp "github.com/fivetwenty-io/rocketchat-client/internal/http"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// MockSession for testing.
type MockSession struct {
	token  string
	userID string
}

func (m *MockSession) AuthHeaders() (string, string) {
	return m.token, m.userID
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/channels.info", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "test-token", request.Header.Get("X-Auth-Token"))
			assert.Equal(t, "user-id", request.Header.Get("X-User-Id"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "general", request.URL.Query().Get("roomName"))

			_, _ = writer.Write([]byte(`{"success": true, "channel": {"_id": "GENERAL", "name": "general"}}`))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, &MockSession{token: "test-token", userID: "user-id"})

		resp, err := client.Get(context.Background(), "channels.info", rocketchat.Params{"roomName": "general"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.True(t, resp.IsJSON)

		object, ok := resp.Object()
		require.True(t, ok)
		assert.Equal(t, true, object["success"])

		var result rocketchat.ChannelResponse

		require.NoError(t, resp.Decode(&result))
		assert.Equal(t, "GENERAL", result.Channel.ID)
	})

	t.Run("non JSON success body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			_, _ = writer.Write([]byte("pong"))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "ping", nil)
		require.NoError(t, err)
		assert.False(t, resp.IsJSON)
		assert.Nil(t, resp.Data)
		assert.Equal(t, "pong", resp.Text())
	})

	t.Run("extra bundle is merged and explicit params win", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "count=10&offset=0&roomId=ROOM&type=c", request.URL.RawQuery)
			_, _ = writer.Write([]byte(`{"success": true}`))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil)

		_, err := client.Do(context.Background(), &rocketchat.Request{
			Method:   "GET",
			Endpoint: "channels.history",
			Params:   rocketchat.Params{"roomId": "ROOM", "offset": 0, "count": 10},
			Extra:    rocketchat.Params{"roomId": "OTHER", "type": "c"},
		})
		require.NoError(t, err)
	})

	t.Run("api path override", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/info", request.URL.Path)
			_, _ = writer.Write([]byte(`{"success": true, "version": "6.5.0"}`))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL+"/", nil)

		_, err := client.Do(context.Background(), &rocketchat.Request{
			Method:   "GET",
			Endpoint: "info",
			APIPath:  "/api/",
		})
		require.NoError(t, err)
	})

	t.Run("no auth omits session headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Empty(t, request.Header.Get("X-Auth-Token"))
			assert.Empty(t, request.Header.Get("X-User-Id"))
			_, _ = writer.Write([]byte(`{"status": "success"}`))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, &MockSession{token: "test-token", userID: "user-id"})

		_, err := client.Do(context.Background(), &rocketchat.Request{
			Method:   "POST",
			Endpoint: "login",
			Params:   rocketchat.Params{"username": "bot"},
			NoAuth:   true,
		})
		require.NoError(t, err)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]interface{}

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "general", body["name"])
			assert.Equal(t, []interface{}{"alice", "bob"}, body["members"])

			writer.WriteHeader(http.StatusOK)
			_, _ = writer.Write([]byte(`{"success": true}`))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "channels.create", rocketchat.Params{
			"name":    "general",
			"members": []string{"alice", "bob"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("password is sent as pass on POST", func(t *testing.T) {
		t.Parallel()

		bodies := make(chan map[string]interface{}, 2)

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]interface{}

			_ = json.NewDecoder(request.Body).Decode(&body)
			bodies <- body

			_, _ = writer.Write([]byte(`{"success": true}`))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil)

		_, err := client.Post(context.Background(), "users.register", rocketchat.Params{"password": "secret"})
		require.NoError(t, err)

		body := <-bodies
		assert.Equal(t, "secret", body["pass"])
		assert.NotContains(t, body, "password")

		_, err = client.Post(context.Background(), "users.create", rocketchat.Params{"password": "secret"})
		require.NoError(t, err)

		body = <-bodies
		assert.Equal(t, "secret", body["password"])
		assert.NotContains(t, body, "pass")
	})

	t.Run("form encoding", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))
			require.NoError(t, request.ParseForm())
			assert.Equal(t, "hello world", request.PostForm.Get("msg"))
			_, _ = writer.Write([]byte(`{"success": true}`))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil)

		_, err := client.Do(context.Background(), &rocketchat.Request{
			Method:   "POST",
			Endpoint: "rooms.upload/ROOM",
			Params:   rocketchat.Params{"msg": "hello world"},
			Encoding: rocketchat.EncodingForm,
		})
		require.NoError(t, err)
	})

	t.Run("multipart upload", func(t *testing.T) {
		t.Parallel()

		png := []byte("\x89PNG\r\n\x1a\nrest-of-image")

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/rooms.upload/ROOM", request.URL.Path)
			assert.True(t, strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data"))
			require.NoError(t, request.ParseMultipartForm(1<<20))
			assert.Equal(t, "a picture", request.FormValue("description"))

			file, header, err := request.FormFile("file")
			require.NoError(t, err)

			defer func() { _ = file.Close() }()

			content, err := io.ReadAll(file)
			require.NoError(t, err)
			assert.Equal(t, png, content)
			assert.Equal(t, "logo.png", header.Filename)
			assert.Equal(t, "image/png", header.Header.Get("Content-Type"))

			_, _ = writer.Write([]byte(`{"success": true}`))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil)

		_, err := client.Post(context.Background(), "rooms.upload/ROOM", rocketchat.Params{"description": "a picture"},
			rocketchat.File{Field: "file", Name: "logo.png", Content: strings.NewReader(string(png))})
		require.NoError(t, err)
	})

	t.Run("JSON encoding with files fails before sending", func(t *testing.T) {
		t.Parallel()

		called := false

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			called = true
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil)

		_, err := client.Do(context.Background(), &rocketchat.Request{
			Method:   "POST",
			Endpoint: "rooms.upload/ROOM",
			Files:    []rocketchat.File{{Field: "file", Name: "a.txt", Content: strings.NewReader("a")}},
			Encoding: rocketchat.EncodingJSON,
		})
		require.ErrorIs(t, err, rocketchat.ErrJSONWithFiles)
		assert.False(t, called)
	})

	t.Run("api error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusBadRequest)
			_, _ = writer.Write([]byte(`{"success": false, "error": "Invalid room", "errorType": "error-invalid-room"}`))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "channels.info", rocketchat.Params{"roomId": "missing"})
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, rocketchat.IsAPIError(err))
		assert.True(t, rocketchat.HasErrorType(err, "error-invalid-room"))
		assert.Equal(t, 400, rocketchat.StatusCode(err))
		assert.Contains(t, err.Error(), "Invalid room")
	})

	t.Run("transport error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusBadGateway)
			_, _ = writer.Write([]byte("<html>Bad Gateway</html>"))
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil)

		_, err := client.Get(context.Background(), "channels.info", nil)
		require.Error(t, err)
		assert.True(t, rocketchat.IsTransportError(err))
		assert.False(t, rocketchat.IsAPIError(err))
		assert.Equal(t, 502, rocketchat.StatusCode(err))
		assert.Contains(t, err.Error(), "<html>Bad Gateway</html>")
	})

	t.Run("network error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := server.URL
		server.Close()

		client := rchttp.NewClient(url, nil)

		_, err := client.Get(context.Background(), "info", nil)
		require.Error(t, err)
		assert.False(t, rocketchat.IsAPIError(err))
		assert.False(t, rocketchat.IsTransportError(err))
	})

	t.Run("custom user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "bot/2.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := rchttp.NewClient(server.URL, nil, rchttp.WithUserAgent("bot/2.0"))

		_, err := client.Get(context.Background(), "info", nil)
		require.NoError(t, err)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]bool{"success": true})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := rchttp.NewClient(server.URL, nil, rchttp.WithLogger(logger), rchttp.WithDebug(true))

		_, err := client.Get(context.Background(), "me", nil)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*rchttp.Client, context.Context) (*rocketchat.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *rchttp.Client, ctx context.Context) (*rocketchat.Response, error) {
				return c.Get(ctx, "test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *rchttp.Client, ctx context.Context) (*rocketchat.Response, error) {
				return c.Post(ctx, "test", rocketchat.Params{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *rchttp.Client, ctx context.Context) (*rocketchat.Response, error) {
				return c.Put(ctx, "test", rocketchat.Params{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *rchttp.Client, ctx context.Context) (*rocketchat.Response, error) {
				return c.Delete(ctx, "test")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/api/v1/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := rchttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_NoRetries(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusInternalServerError, http.StatusTooManyRequests, http.StatusBadRequest} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			attempts := 0

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				attempts++

				writer.WriteHeader(status)
			}))
			defer server.Close()

			client := rchttp.NewClient(server.URL, nil)

			_, err := client.Get(context.Background(), "test", nil)
			require.Error(t, err)
			assert.Equal(t, status, rocketchat.StatusCode(err))
			assert.Equal(t, 1, attempts)
		})
	}
}
