package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

func TestHTTPClientGenerate_SendsOrderedMessages(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi there"}}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "key", "m1", time.Second, nil)
	msgs := []Message{{Role: "system", Content: "p"}, {Role: "user", Content: "hello"}}
	out, err := c.Generate(context.Background(), msgs)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Response != "hi there" {
		t.Fatalf("unexpected response %#v", out.Response)
	}
	if got.Model != "m1" || len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "hello" {
		t.Fatalf("unexpected request body %+v", got)
	}
}

func TestHTTPClientGenerate_LenientShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want any
	}{
		{name: "no choices", body: `{"choices":[]}`, want: nil},
		{name: "null content", body: `{"choices":[{"message":{"content":null}}]}`, want: nil},
		{name: "array content", body: `{"choices":[{"message":{"content":[1,2]}}]}`, want: []any{float64(1), float64(2)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			out, err := NewHTTPClient(srv.URL, "", "m", time.Second, nil).Generate(context.Background(), nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if _, isString := out.Response.(string); isString {
				t.Fatalf("expected non-string response, got %#v", out.Response)
			}
			if tc.want == nil && out.Response != nil {
				t.Fatalf("expected nil response, got %#v", out.Response)
			}
		})
	}
}

func TestHTTPClientGenerate_Errors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()
		if _, err := NewHTTPClient(srv.URL, "", "m", time.Second, nil).Generate(context.Background(), nil); err == nil {
			t.Fatalf("expected error on 502")
		}
	})

	t.Run("api error body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
		}))
		defer srv.Close()
		if _, err := NewHTTPClient(srv.URL, "", "m", time.Second, nil).Generate(context.Background(), nil); err == nil {
			t.Fatalf("expected api error")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not-json`))
		}))
		defer srv.Close()
		if _, err := NewHTTPClient(srv.URL, "", "m", time.Second, nil).Generate(context.Background(), nil); err == nil {
			t.Fatalf("expected unmarshal error")
		}
	})
}

func TestWorkersAIClientGenerate(t *testing.T) {
	var gotPath string
	var got workersAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"result":{"response":"yalla"},"success":true,"errors":[]}`))
	}))
	defer srv.Close()

	c, err := NewWorkersAIClient(srv.URL, "acc", "tok", "@cf/meta/llama-3.3-70b-instruct-fp8-fast", time.Second, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	out, err := c.Generate(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Response != "yalla" {
		t.Fatalf("unexpected response %#v", out.Response)
	}
	if gotPath != "/accounts/acc/ai/run/@cf/meta/llama-3.3-70b-instruct-fp8-fast" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "hi" {
		t.Fatalf("unexpected request %+v", got)
	}
}

func TestWorkersAIClientGenerate_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":null,"success":false,"errors":[{"code":5007,"message":"no such model"}]}`))
	}))
	defer srv.Close()

	c, err := NewWorkersAIClient(srv.URL, "acc", "tok", "m", time.Second, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Generate(context.Background(), nil); err == nil {
		t.Fatalf("expected error when success=false")
	}
}

func TestNewWorkersAIClient_Validation(t *testing.T) {
	if _, err := NewWorkersAIClient("", "", "tok", "m", 0, nil); err == nil {
		t.Fatalf("expected error for missing account id")
	}
	if _, err := NewWorkersAIClient("", "acc", "tok", " ", 0, nil); err == nil {
		t.Fatalf("expected error for missing model")
	}
}

type fakeChatModel struct {
	got []*schema.Message
	out *schema.Message
	err error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.got = input
	return f.out, f.err
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestEinoClientGenerate_MapsRoles(t *testing.T) {
	fake := &fakeChatModel{out: schema.AssistantMessage("marhaba", nil)}
	c := NewEinoClient(fake)

	out, err := c.Generate(context.Background(), []Message{
		{Role: "system", Content: "p"},
		{Role: "user", Content: "a"},
		{Role: "assistant", Content: "b"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Response != "marhaba" {
		t.Fatalf("unexpected response %#v", out.Response)
	}
	wantRoles := []schema.RoleType{schema.System, schema.User, schema.Assistant}
	if len(fake.got) != len(wantRoles) {
		t.Fatalf("expected %d messages, got %d", len(wantRoles), len(fake.got))
	}
	for i, role := range wantRoles {
		if fake.got[i].Role != role {
			t.Fatalf("message %d: expected role %s, got %s", i, role, fake.got[i].Role)
		}
	}
}

func TestEinoClientGenerate_NilAndError(t *testing.T) {
	out, err := NewEinoClient(&fakeChatModel{}).Generate(context.Background(), nil)
	if err != nil || out.Response != nil {
		t.Fatalf("expected empty completion for nil message, got %#v, %v", out, err)
	}

	if _, err := NewEinoClient(&fakeChatModel{err: errors.New("boom")}).Generate(context.Background(), nil); err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestArkConfigEnabled(t *testing.T) {
	if (ArkConfig{APIKey: "k"}).Enabled() {
		t.Fatalf("expected disabled without model")
	}
	if !(ArkConfig{APIKey: "k", Model: "ep-1"}).Enabled() {
		t.Fatalf("expected enabled with api key and model")
	}
	if !(ArkConfig{AccessKey: "a", SecretKey: "s", Model: "ep-1"}).Enabled() {
		t.Fatalf("expected enabled with ak/sk and model")
	}
}
