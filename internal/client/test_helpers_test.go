package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

// Session headers used by test clients.
const (
	TestAuthToken = "test-token"
	TestUserID    = "test-user"
)

// NewTestClient creates a client for baseURL with a preset session.
func NewTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(context.Background(), &rocketchat.Config{
		ServerURL: baseURL,
		AuthToken: TestAuthToken,
		UserID:    TestUserID,
	})
	require.NoError(t, err)

	return client
}

// TestOperation describes one call against a canned server response.
type TestOperation[TResponse any] struct {
	Name           string
	ExpectedMethod string
	ExpectedPath   string
	// ExpectedQuery is checked for GET requests.
	ExpectedQuery map[string]string
	// ExpectedBody is checked for JSON bodies.
	ExpectedBody map[string]interface{}
	StatusCode   int
	Response     string
	WantErr      bool
	ErrMessage   string
	Check        func(t *testing.T, result *TResponse)
}

// RunOperationTests runs a series of operation tests against httptest servers.
func RunOperationTests[TResponse any](
	t *testing.T,
	tests []TestOperation[TResponse],
	call func(*Client, context.Context) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedMethod, request.Method)
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, TestAuthToken, request.Header.Get("X-Auth-Token"))
				assert.Equal(t, TestUserID, request.Header.Get("X-User-Id"))

				for key, value := range testCase.ExpectedQuery {
					assert.Equal(t, value, request.URL.Query().Get(key), "query parameter %s", key)
				}

				if testCase.ExpectedBody != nil {
					var body map[string]interface{}

					assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
					assert.Equal(t, testCase.ExpectedBody, body)
				}

				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)
				_, _ = writer.Write([]byte(testCase.Response))
			}))
			defer server.Close()

			result, err := call(NewTestClient(t, server.URL), context.Background())

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// PageServer serves a listing of total items under listKey, honoring the
// offset and count query parameters, and counts the requests it receives.
type PageServer struct {
	*httptest.Server

	Requests chan *http.Request
}

// NewPageServer starts a PageServer for path.
func NewPageServer(t *testing.T, path, listKey string, total int) *PageServer {
	t.Helper()

	pages := &PageServer{Requests: make(chan *http.Request, 64)}
	pages.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, path, request.URL.Path)
		pages.Requests <- request

		var offset, count int

		_ = json.Unmarshal([]byte(request.URL.Query().Get("offset")), &offset)
		_ = json.Unmarshal([]byte(request.URL.Query().Get("count")), &count)

		items := []map[string]interface{}{}
		for i := offset; i < offset+count && i < total; i++ {
			items = append(items, map[string]interface{}{"_id": PageItemID(i)})
		}

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"success": true,
			listKey:   items,
			"offset":  offset,
			"count":   len(items),
			"total":   total,
		})
	}))
	t.Cleanup(pages.Close)

	return pages
}

// Fetches returns how many requests were served so far.
func (p *PageServer) Fetches() int {
	return len(p.Requests)
}

// PageItemID is the id PageServer gives the item at index i.
func PageItemID(i int) string {
	return fmt.Sprintf("item-%03d", i)
}
