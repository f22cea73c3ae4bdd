// Package gemini resolves operation words with the Gemini API.
//
// The client implements linguaflow.Resolver and linguaflow.SentenceConverter.
// Each capability is a single generateContent call with a system instruction
// that pins the reply format, so the grammar stays in charge of all structure
// and the model only answers the one semantic question it is asked.
package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	backoff "gopkg.in/cenkalti/backoff.v1"

	"github.com/linguaflow/linguaflow"
)

// ErrNoAPIKey is returned by New when no API key is supplied.
var ErrNoAPIKey = errors.New("gemini: missing API key")

const (
	defaultModel   = "gemini-2.5-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultTries   = 3
)

// resolveInstruction pins the resolver replies to a bare operator symbol.
const resolveInstruction = `You are a semantic resolver for a grammar-based mathematical interpreter.

Your ONLY task is to determine if a single word represents a mathematical operation.

When given a word, respond with ONLY ONE of these symbols:
- + (for addition: sum, add, plus, total, accumulate, aggregate, combine, etc.)
- - (for subtraction: subtract, minus, difference, take away, remove, etc.)
- * (for multiplication: multiply, times, product, etc.)
- / (for division: divide, split, quotient, etc.)

Rules:
1. Respond with ONLY the symbol: +, -, *, or /
2. NO explanations, NO extra text, ONLY the symbol
3. If the word is NOT a mathematical operation, respond with: ERROR
4. Consider synonyms and common variations
5. Be case-insensitive

Examples:
Input: "sum" -> Output: +
Input: "accumulate" -> Output: +
Input: "multiply" -> Output: *
Input: "quotient" -> Output: /
Input: "gibberish" -> Output: ERROR
Input: "hello" -> Output: ERROR`

// convertInstruction pins sentence conversion to a bare symbolic expression.
const convertInstruction = `You convert natural-language arithmetic questions to symbolic expressions.

When given a question, respond with ONLY a symbolic arithmetic expression
using numbers, + - * /, and parentheses.

Rules:
1. NO explanations, NO extra text, ONLY the expression
2. If the question is not an arithmetic question, respond with: ERROR

Examples:
Input: "what is 5 plus 3" -> Output: 5 + 3
Input: "what is answer of 10 divided by 2" -> Output: 10 / 2
Input: "how are you today" -> Output: ERROR`

// Client talks to the Generative Language REST API.
type Client struct {
	apiKey string
	model  string
	base   string
	http   *http.Client
	log    zerolog.Logger
	tries  uint64
}

// Option configures a Client.
type Option func(*Client)

// WithModel selects the model; the default is gemini-2.5-flash.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithBaseURL points the client at a different API endpoint. Tests use it
// with httptest servers.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.base = strings.TrimRight(base, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout bounds each resolution request, retries included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger attaches a structured logger; the default discards output.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTries sets how often a retryable request is attempted.
func WithTries(n uint64) Option {
	return func(c *Client) { c.tries = n }
}

// New creates a client. The API key is required.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	c := &Client{
		apiKey: apiKey,
		model:  defaultModel,
		base:   defaultBaseURL,
		http:   &http.Client{Timeout: 30 * time.Second},
		log:    zerolog.Nop(),
		tries:  defaultTries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Resolve maps a single operation word to an operator. A word the model
// rejects wraps linguaflow.ErrUnknownWord; transport, quota, and malformed
// replies surface as backend failures.
func (c *Client) Resolve(word string) (linguaflow.Op, error) {
	start := time.Now()
	reply, err := c.generate(context.Background(), resolveInstruction, word)
	if err != nil {
		return 0, fmt.Errorf("gemini: resolving %q: %w", word, err)
	}
	c.log.Debug().Str("word", word).Str("reply", reply).Dur("took", time.Since(start)).Msg("resolved operation word")
	switch reply {
	case "+", "-", "*", "/":
		return linguaflow.Op(reply[0]), nil
	case "ERROR":
		return 0, fmt.Errorf("%w: %q", linguaflow.ErrUnknownWord, word)
	default:
		return 0, fmt.Errorf("gemini: unexpected reply %q for word %q", reply, word)
	}
}

// Convert turns a whole natural-language question into a symbolic expression
// string, which the caller feeds to the ordinary pipeline.
func (c *Client) Convert(sentence string) (string, error) {
	reply, err := c.generate(context.Background(), convertInstruction, sentence)
	if err != nil {
		return "", fmt.Errorf("gemini: converting sentence: %w", err)
	}
	if strings.HasPrefix(reply, "ERROR") {
		return "", fmt.Errorf("gemini: cannot convert %q to a symbolic expression", sentence)
	}
	return reply, nil
}

// REST payloads, trimmed to the fields this client uses.

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Code, e.Status, e.Message)
}

// generate performs one generateContent call and returns the trimmed text of
// the first candidate. Rate limits and server errors are retried with
// exponential backoff; everything else fails permanently.
func (c *Client) generate(ctx context.Context, instruction, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: instruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	url := c.base + "/models/" + c.model + ":generateContent"

	var reply string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			err := statusError(resp.StatusCode, data)
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				c.log.Warn().Int("status", resp.StatusCode).Msg("retrying generateContent")
				return err
			}
			return backoff.Permanent(err)
		}
		var out generateResponse
		if err := json.Unmarshal(data, &out); err != nil {
			return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
		}
		if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
			return backoff.Permanent(errors.New("empty response"))
		}
		reply = strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
		return nil
	}
	b := backoff.WithMaxTries(backoff.NewExponentialBackOff(), c.tries)
	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		return "", err
	}
	return reply, nil
}

// statusError decodes the API error payload when present.
func statusError(code int, data []byte) error {
	var out generateResponse
	if err := json.Unmarshal(data, &out); err == nil && out.Error != nil {
		return out.Error
	}
	return fmt.Errorf("http status %d", code)
}

var (
	_ linguaflow.Resolver          = (*Client)(nil)
	_ linguaflow.SentenceConverter = (*Client)(nil)
)
