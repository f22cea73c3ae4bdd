package gemini

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/goccy/go-json"

	"github.com/linguaflow/linguaflow"
)

// reply builds a generateContent response body with a single text candidate.
func reply(text string) string {
	body, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{
				"role":  "model",
				"parts": []map[string]string{{"text": text}},
			}},
		},
	})
	return string(body)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithBaseURL(srv.URL)}, opts...)
	c, err := New("test-key", opts...)
	assert.NoError(t, err)
	return c
}

func TestNewRequiresKey(t *testing.T) {
	t.Parallel()
	_, err := New("")
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestResolve(t *testing.T) {
	t.Parallel()
	cases := []struct {
		word string
		text string
		want linguaflow.Op
	}{
		{"sum", "+", linguaflow.OpAdd},
		{"subtract", "-", linguaflow.OpSub},
		{"multiply", "*", linguaflow.OpMul},
		{"quotient", "/", linguaflow.OpDiv},
		{"spaced", "  /  ", linguaflow.OpDiv},
	}
	for _, c := range cases {
		c := c
		t.Run(c.word, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
				var req generateRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.NotZero(t, req.SystemInstruction)
				assert.Equal(t, c.word, req.Contents[0].Parts[0].Text)
				w.Write([]byte(reply(c.text)))
			})
			op, err := client.Resolve(c.word)
			assert.NoError(t, err)
			assert.Equal(t, c.want, op)
		})
	}
}

func TestResolveUnknownWord(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(reply("ERROR")))
	})
	_, err := client.Resolve("gibberish")
	assert.True(t, errors.Is(err, linguaflow.ErrUnknownWord), "got %v", err)
}

func TestResolveUnexpectedReply(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(reply("The answer is +")))
	})
	_, err := client.Resolve("sum")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, linguaflow.ErrUnknownWord))
}

func TestResolveModelPath(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-pro:generateContent", r.URL.Path)
		w.Write([]byte(reply("+")))
	}, WithModel("gemini-2.5-pro"))
	_, err := client.Resolve("sum")
	assert.NoError(t, err)
}

func TestResolveRetriesServerErrors(t *testing.T) {
	t.Parallel()
	var calls atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, `{"error":{"code":503,"status":"UNAVAILABLE","message":"overloaded"}}`, http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(reply("+")))
	})
	op, err := client.Resolve("sum")
	assert.NoError(t, err)
	assert.Equal(t, linguaflow.OpAdd, op)
	assert.Equal(t, int64(2), calls.Load())
}

func TestResolveQuotaExhausted(t *testing.T) {
	t.Parallel()
	var calls atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"quota"}}`, http.StatusTooManyRequests)
	}, WithTries(2))
	_, err := client.Resolve("sum")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, linguaflow.ErrUnknownWord))
	assert.Equal(t, int64(2), calls.Load())
}

func TestResolveBadRequestIsPermanent(t *testing.T) {
	t.Parallel()
	var calls atomic.Int64
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":{"code":400,"status":"INVALID_ARGUMENT","message":"bad key"}}`, http.StatusBadRequest)
	})
	_, err := client.Resolve("sum")
	assert.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestConvert(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "what is 5 plus 3", req.Contents[0].Parts[0].Text)
		w.Write([]byte(reply("5 + 3")))
	})
	expr, err := client.Convert("what is 5 plus 3")
	assert.NoError(t, err)
	assert.Equal(t, "5 + 3", expr)
}

func TestConvertRejectsNonArithmetic(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(reply("ERROR")))
	})
	_, err := client.Convert("how are you")
	assert.Error(t, err)
}
